package ipc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/matjam/wallrotate"
	"resty.dev/v3"
)

// ErrDaemonNotRunning is returned when nothing is listening on the socket.
var ErrDaemonNotRunning = errors.New("wallrotate daemon is not running")

func newClient() *resty.Client {
	path := SocketPath()

	client := resty.NewWithClient(&http.Client{
		Transport: &http.Transport{
			DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
				var d net.Dialer
				conn, err := d.DialContext(ctx, "unix", path)
				if err != nil {
					return nil, fmt.Errorf("%w: %v", ErrDaemonNotRunning, err)
				}
				return conn, nil
			},
		},
	})

	client.SetBaseURL("http://wallrotate")
	client.SetHeader("Content-Type", "application/json")
	client.SetHeader("Accept", "application/json")
	client.SetHeader("User-Agent", "wallrotate/"+strings.TrimSpace(wallrotate.Version))

	return client
}

// SendCommand posts body to the given route and decodes the daemon's reply.
func SendCommand(route string, body any) (*Response, error) {
	result := Response{}
	failure := Response{}

	req := newClient().R().SetResult(&result).SetError(&failure)
	if body != nil {
		req.SetBody(body)
	}

	response, err := req.Post(route)
	if err != nil {
		return nil, err
	}

	if response.StatusCode() != http.StatusOK {
		if failure.Message != "" {
			return nil, errors.New(failure.Message)
		}
		return nil, fmt.Errorf("error sending command: %s", response.Status())
	}

	return &result, nil
}

func SendStatus() (*StatusResponse, error) {
	result := StatusResponse{}

	response, err := newClient().R().SetResult(&result).Get("/status")
	if err != nil {
		return nil, err
	}
	if response.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("error getting status: %s", response.Status())
	}

	return &result, nil
}

func SendStart() error {
	_, err := SendCommand("/start", nil)
	return err
}

func SendStop() error {
	_, err := SendCommand("/stop", nil)
	return err
}

func SendNext() error {
	_, err := SendCommand("/next", nil)
	return err
}

func SendLoad(paths []string) error {
	_, err := SendCommand("/load", paths)
	return err
}

func SendQuit() error {
	_, err := SendCommand("/quit", nil)
	return err
}
