package remote

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"resty.dev/v3"

	"github.com/vk/mgrid/internal/ctxlog"
	"github.com/vk/mgrid/internal/errdefs"
	"github.com/vk/mgrid/internal/mbean"
	"github.com/vk/mgrid/internal/objectname"
)

// Conn is an open, authenticated session to a remote registry endpoint.
// It implements mbean.Connection. A Conn is exclusively owned by the
// operation that dialed it and must be closed exactly once.
type Conn struct {
	client *resty.Client
	logger *slog.Logger
}

// Dial opens an authenticated session against the endpoint. An unreachable
// endpoint or rejected credentials surfaces as ErrConnectFailed wrapping the
// transport error.
func Dial(ctx context.Context, ep Endpoint) (*Conn, error) {
	logger := ctxlog.FromContext(ctx).With("endpoint", ep.ServiceURL())
	client := resty.New().SetBaseURL(ep.baseURL())

	var session SessionResponse
	var apiErr ErrorResponse
	res, err := client.R().
		SetContext(ctx).
		SetBasicAuth(ep.Login, ep.Password).
		SetBody(SessionRequest{ServiceURL: ep.ServiceURL()}).
		SetResult(&session).
		SetError(&apiErr).
		Post("/v1/session")
	if err != nil {
		_ = client.Close()
		return nil, errdefs.ConnectFailedf("cannot connect to the registry at %s: %w", ep.ServiceURL(), err)
	}
	if res.IsError() {
		_ = client.Close()
		msg := apiErr.Message
		if msg == "" {
			msg = strings.TrimSpace(res.String())
		}
		return nil, errdefs.ConnectFailedf("the registry at %s rejected the connection: %s", ep.ServiceURL(), msg)
	}

	client.SetAuthToken(session.Token)
	logger.Debug("Management session opened.")
	return &Conn{client: client, logger: logger}, nil
}

// Close releases the session. Close failures are logged and discarded:
// cleanup must never replace the primary outcome of the operation that
// triggered it. Safe on a nil Conn.
func (c *Conn) Close() {
	if c == nil {
		return
	}
	res, err := c.client.R().Delete("/v1/session")
	if err != nil {
		c.logger.Debug("Best-effort session close failed.", "error", err)
	} else if res.IsError() {
		c.logger.Debug("Best-effort session close rejected.", "status", res.StatusCode())
	}
	_ = c.client.Close()
	c.logger.Debug("Management session closed.")
}

// post sends one request/response exchange and maps error envelopes back
// into this layer's error vocabulary.
func (c *Conn) post(ctx context.Context, path string, body, out any) error {
	var apiErr ErrorResponse
	res, err := c.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(out).
		SetError(&apiErr).
		Post(path)
	if err != nil {
		return fmt.Errorf("registry request %s failed: %w", path, err)
	}
	if res.IsError() {
		return decodeError(&apiErr, res)
	}
	return nil
}

// get mirrors post for the read-only endpoints.
func (c *Conn) get(ctx context.Context, path string, out any) error {
	var apiErr ErrorResponse
	res, err := c.client.R().
		SetContext(ctx).
		SetResult(out).
		SetError(&apiErr).
		Get(path)
	if err != nil {
		return fmt.Errorf("registry request %s failed: %w", path, err)
	}
	if res.IsError() {
		return decodeError(&apiErr, res)
	}
	return nil
}

// decodeError reconstructs the error a non-2xx envelope describes.
func decodeError(apiErr *ErrorResponse, res *resty.Response) error {
	msg := apiErr.Message
	if msg == "" {
		msg = strings.TrimSpace(res.String())
	}
	if apiErr.Code == CodeNotFound {
		return fmt.Errorf("%w: %s", mbean.ErrNameNotFound, msg)
	}
	return &CallError{Code: apiErr.Code, Message: msg}
}

// IsRegistered implements mbean.Connection.
func (c *Conn) IsRegistered(ctx context.Context, name objectname.Name) (bool, error) {
	var out BoolResponse
	if err := c.post(ctx, "/v1/registered", NameRequest{Name: name.String()}, &out); err != nil {
		return false, err
	}
	return out.Value, nil
}

// IsInstanceOf implements mbean.Connection.
func (c *Conn) IsInstanceOf(ctx context.Context, name objectname.Name, typeName string) (bool, error) {
	var out BoolResponse
	if err := c.post(ctx, "/v1/instanceof", InstanceOfRequest{Name: name.String(), TypeName: typeName}, &out); err != nil {
		return false, err
	}
	return out.Value, nil
}

// Invoke implements mbean.Connection. Errors the endpoint reports for the
// invocation come back as *CallError and are not wrapped further, so the
// caller sees the failure the managed object raised.
func (c *Conn) Invoke(ctx context.Context, name objectname.Name, method string, args []any) (any, error) {
	var out ValueResponse
	req := InvokeRequest{Name: name.String(), Method: method, Args: args}
	if err := c.post(ctx, "/v1/invoke", req, &out); err != nil {
		return nil, err
	}
	return out.Value, nil
}

// QueryAll implements mbean.Connection.
func (c *Conn) QueryAll(ctx context.Context) ([]mbean.Entry, error) {
	var out QueryResponse
	if err := c.get(ctx, "/v1/query", &out); err != nil {
		return nil, err
	}
	entries := make([]mbean.Entry, 0, len(out.Entries))
	for _, e := range out.Entries {
		name, err := objectname.Parse(e.Name)
		if err != nil {
			return nil, fmt.Errorf("registry reported an unparsable object name %q: %w", e.Name, err)
		}
		entries = append(entries, mbean.Entry{TypeName: e.TypeName, Name: name})
	}
	return entries, nil
}

// Register asks the endpoint to register its implementation of the named
// contract, optionally under an explicit object name.
func (c *Conn) Register(ctx context.Context, typeName string, name objectname.Name) (objectname.Name, error) {
	req := RegisterRequest{TypeName: typeName}
	if !name.IsZero() {
		req.Name = name.String()
	}
	var out NameResponse
	if err := c.post(ctx, "/v1/register", req, &out); err != nil {
		return objectname.Name{}, err
	}
	registered, err := objectname.Parse(out.Name)
	if err != nil {
		return objectname.Name{}, fmt.Errorf("registry returned an unparsable object name %q: %w", out.Name, err)
	}
	return registered, nil
}

// Unregister asks the endpoint to remove the binding under name.
func (c *Conn) Unregister(ctx context.Context, name objectname.Name) error {
	return c.post(ctx, "/v1/unregister", NameRequest{Name: name.String()}, nil)
}
