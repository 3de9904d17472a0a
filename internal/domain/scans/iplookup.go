package scans

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"

	"pet-qr-tags/internal/platform/httpclient"
)

// IPLookup devuelve la IP pública vista desde afuera.
type IPLookup interface {
	PublicIP(ctx context.Context) (string, error)
}

type ipifyQuery struct {
	Format string `url:"format"`
}

type ipifyResponse struct {
	IP string `json:"ip"`
}

// HTTPLookup consulta un servicio tipo ipify (?format=json -> {"ip": "..."}).
type HTTPLookup struct {
	client *httpclient.Client
}

func NewHTTPLookup(client *httpclient.Client) *HTTPLookup {
	return &HTTPLookup{client: client}
}

func (l *HTTPLookup) PublicIP(ctx context.Context) (string, error) {
	var out ipifyResponse
	err := l.client.DoJSON(ctx, httpclient.Request{
		Method: http.MethodGet,
		Query:  ipifyQuery{Format: "json"},
	}, &out)
	if err != nil {
		return "", err
	}
	ip := strings.TrimSpace(out.IP)
	if net.ParseIP(ip) == nil {
		return "", errors.New("ip lookup: invalid address in response")
	}
	return ip, nil
}

// Routable indica si la IP sirve tal cual para el log.
// Privadas, loopback y link-local vienen de la misma red que el servidor.
func Routable(ip net.IP) bool {
	if ip == nil {
		return false
	}
	return !ip.IsPrivate() && !ip.IsLoopback() && !ip.IsLinkLocalUnicast() && !ip.IsUnspecified()
}

// remoteIP saca la IP de r.RemoteAddr (RealIP ya la reescribió si había proxy).
func remoteIP(remoteAddr string) net.IP {
	host, _, err := net.SplitHostPort(strings.TrimSpace(remoteAddr))
	if err != nil {
		host = strings.TrimSpace(remoteAddr)
	}
	return net.ParseIP(host)
}
