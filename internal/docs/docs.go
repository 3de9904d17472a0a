// Package docs expone el swagger de la API.
// Se regenera con: swag init -g cmd/api/main.go -o internal/docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        },
        "AdminKey": {
            "type": "apiKey",
            "name": "X-Admin-Key",
            "in": "header"
        }
    },
    "paths": {
        "/v1/app/boot": {
            "post": {
                "tags": [
                    "app"
                ],
                "summary": "Carga inicial de la app",
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "503": {
                        "description": "Service Unavailable"
                    }
                }
            }
        },
        "/v1/app/login": {
            "post": {
                "tags": [
                    "app"
                ],
                "summary": "Login con código y PIN",
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Unauthorized"
                    },
                    "404": {
                        "description": "Not Found"
                    }
                }
            }
        },
        "/v1/app/register": {
            "post": {
                "tags": [
                    "app"
                ],
                "summary": "Alta de dueño y mascota",
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "401": {
                        "description": "Unauthorized"
                    },
                    "409": {
                        "description": "Conflict"
                    },
                    "422": {
                        "description": "Unprocessable Entity"
                    }
                }
            }
        },
        "/v1/app/navigate": {
            "post": {
                "tags": [
                    "app"
                ],
                "summary": "Cambio de pantalla",
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "409": {
                        "description": "Conflict"
                    }
                }
            }
        },
        "/v1/app/unsaved": {
            "put": {
                "tags": [
                    "app"
                ],
                "summary": "Marca cambios sin guardar del formulario actual",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/v1/app/logout": {
            "post": {
                "tags": [
                    "app"
                ],
                "summary": "Cierra la sesión del dispositivo",
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "409": {
                        "description": "Conflict"
                    }
                }
            }
        },
        "/v1/app/theme": {
            "put": {
                "tags": [
                    "app"
                ],
                "summary": "Cambia el tema",
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "422": {
                        "description": "Unprocessable Entity"
                    }
                }
            }
        },
        "/v1/app/update/ack": {
            "post": {
                "tags": [
                    "app"
                ],
                "summary": "Oculta el banner de actualización",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/v1/app/finder/consent": {
            "post": {
                "tags": [
                    "finder"
                ],
                "summary": "Consentimiento del que encontró la mascota",
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "409": {
                        "description": "Conflict"
                    }
                }
            }
        },
        "/v1/app/finder/login": {
            "post": {
                "tags": [
                    "finder"
                ],
                "summary": "Pasa de la vista pública al login",
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "409": {
                        "description": "Conflict"
                    }
                }
            }
        },
        "/v1/app/lost": {
            "get": {
                "tags": [
                    "lost"
                ],
                "summary": "Borrador del editor de pérdida",
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "409": {
                        "description": "Conflict"
                    }
                }
            }
        },
        "/v1/app/lost/toggle": {
            "post": {
                "tags": [
                    "lost"
                ],
                "summary": "Switch Safe/Lost",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/v1/app/lost/message": {
            "put": {
                "tags": [
                    "lost"
                ],
                "summary": "Nota para quien la encuentre",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/v1/app/lost/locate": {
            "post": {
                "tags": [
                    "lost"
                ],
                "summary": "Centra el mapa en la ubicación actual",
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "409": {
                        "description": "Conflict"
                    }
                }
            }
        },
        "/v1/app/lost/map/lock": {
            "post": {
                "tags": [
                    "lost"
                ],
                "summary": "Bloquea el mapa",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/v1/app/lost/map/unlock": {
            "post": {
                "tags": [
                    "lost"
                ],
                "summary": "Desbloquea el mapa",
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "409": {
                        "description": "Conflict"
                    }
                }
            }
        },
        "/v1/app/lost/map/tap": {
            "post": {
                "tags": [
                    "lost"
                ],
                "summary": "Mueve el marcador (tap o drag)",
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "409": {
                        "description": "Conflict"
                    },
                    "422": {
                        "description": "Unprocessable Entity"
                    }
                }
            }
        },
        "/v1/app/lost/map/drag": {
            "post": {
                "tags": [
                    "lost"
                ],
                "summary": "Mueve el marcador (tap o drag)",
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "409": {
                        "description": "Conflict"
                    },
                    "422": {
                        "description": "Unprocessable Entity"
                    }
                }
            }
        },
        "/v1/app/lost/save": {
            "post": {
                "tags": [
                    "lost"
                ],
                "summary": "Guarda el estado de pérdida",
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "403": {
                        "description": "Forbidden"
                    },
                    "422": {
                        "description": "Unprocessable Entity"
                    }
                }
            }
        },
        "/v1/app/settings/profile": {
            "patch": {
                "tags": [
                    "settings"
                ],
                "summary": "Actualiza el perfil",
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "422": {
                        "description": "Unprocessable Entity"
                    }
                }
            }
        },
        "/v1/app/settings/password": {
            "post": {
                "tags": [
                    "settings"
                ],
                "summary": "Cambia contraseña y PIN",
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "403": {
                        "description": "Forbidden"
                    },
                    "422": {
                        "description": "Unprocessable Entity"
                    }
                }
            }
        },
        "/v1/app/settings/preferences": {
            "put": {
                "tags": [
                    "settings"
                ],
                "summary": "Preferencia de contacto",
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "422": {
                        "description": "Unprocessable Entity"
                    }
                }
            }
        },
        "/v1/app/settings/emergency": {
            "put": {
                "tags": [
                    "settings"
                ],
                "summary": "Contacto de emergencia",
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "422": {
                        "description": "Unprocessable Entity"
                    }
                }
            }
        },
        "/v1/app/settings/email/send": {
            "post": {
                "tags": [
                    "settings"
                ],
                "summary": "Envía el código de verificación de email",
                "responses": {
                    "202": {
                        "description": "Accepted"
                    },
                    "422": {
                        "description": "Unprocessable Entity"
                    },
                    "503": {
                        "description": "Service Unavailable"
                    }
                }
            }
        },
        "/v1/app/settings/email/verify": {
            "post": {
                "tags": [
                    "settings"
                ],
                "summary": "Verifica el email con el código recibido",
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "422": {
                        "description": "Unprocessable Entity"
                    }
                }
            }
        },
        "/pets/{petID}/events": {
            "post": {
                "tags": [
                    "events"
                ],
                "summary": "Crear evento de mascota",
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "401": {
                        "description": "Unauthorized"
                    },
                    "403": {
                        "description": "Forbidden"
                    },
                    "404": {
                        "description": "Not Found"
                    }
                }
            },
            "get": {
                "tags": [
                    "events"
                ],
                "summary": "Listar eventos de una mascota",
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "401": {
                        "description": "Unauthorized"
                    },
                    "403": {
                        "description": "Forbidden"
                    },
                    "404": {
                        "description": "Not Found"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            }
        },
        "/pets/{petID}/events/{eventID}/void": {
            "post": {
                "tags": [
                    "events"
                ],
                "summary": "Anular (void) un evento",
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Unauthorized"
                    },
                    "403": {
                        "description": "Forbidden"
                    },
                    "404": {
                        "description": "Not Found"
                    },
                    "500": {
                        "description": "Internal Server Error"
                    }
                }
            }
        },
        "/v1/finder/{code}": {
            "get": {
                "tags": [
                    "finder"
                ],
                "summary": "Vista pública de la mascota",
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Not Found"
                    }
                }
            }
        },
        "/v1/app/pet": {
            "get": {
                "tags": [
                    "pets"
                ],
                "summary": "Mascota del dueño",
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Unauthorized"
                    },
                    "404": {
                        "description": "Not Found"
                    }
                }
            },
            "put": {
                "tags": [
                    "pets"
                ],
                "summary": "Editar mascota",
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Unauthorized"
                    },
                    "409": {
                        "description": "Conflict"
                    },
                    "422": {
                        "description": "Unprocessable Entity"
                    }
                }
            }
        },
        "/v1/app/pet/photo": {
            "post": {
                "tags": [
                    "pets"
                ],
                "summary": "Subir foto",
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "422": {
                        "description": "Unprocessable Entity"
                    }
                }
            }
        },
        "/v1/app/scans": {
            "get": {
                "tags": [
                    "scans"
                ],
                "summary": "Últimos escaneos de la etiqueta",
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Unauthorized"
                    }
                }
            }
        },
        "/v1/tags/{code}": {
            "get": {
                "tags": [
                    "tags"
                ],
                "summary": "Clasificar código QR",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/v1/admin/tags": {
            "post": {
                "tags": [
                    "admin"
                ],
                "summary": "Alta de etiqueta",
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Bad Request"
                    },
                    "401": {
                        "description": "Unauthorized"
                    },
                    "409": {
                        "description": "Conflict"
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.3.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Pet QR Tags API",
	Description:      "Etiquetas QR para mascotas: login con código y PIN, registro, modo perdido y vista pública para quien la encuentra.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
