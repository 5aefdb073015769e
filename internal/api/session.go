package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/DataDog/datadog-go/v5/statsd"
	"github.com/gojektech/heimdall/v6/httpclient"
	"go.uber.org/zap"
)

const (
	endpointPath = "/api_jsonrpc.php"
	contentType  = "application/json-rpc"
	rpcVersion   = "2.0"
)

// Params are the named parameters of a remote method.
type Params map[string]any

// Row is one record of a *.get reply. Numbers are kept as json.Number.
type Row map[string]any

type Config struct {
	Server  string
	Timeout time.Duration
}

// Session issues JSON-RPC calls against one server and holds the auth token.
// A Session is not safe for concurrent use.
type Session struct {
	client   *httpclient.Client
	endpoint string
	id       int64
	auth     *string
	logger   *zap.SugaredLogger
	statsd   statsd.ClientInterface
}

type request struct {
	JSONRPC string  `json:"jsonrpc"`
	Method  string  `json:"method"`
	Params  Params  `json:"params"`
	ID      int64   `json:"id"`
	Auth    *string `json:"auth"`
}

type replyError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

type reply struct {
	Result json.RawMessage `json:"result"`
	Error  *replyError     `json:"error"`
}

func NewSession(config Config, logger *zap.SugaredLogger, client statsd.ClientInterface) *Session {
	if client == nil {
		client = &statsd.NoOpClient{}
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Session{
		// no retries: a failed call surfaces immediately
		client:   httpclient.NewClient(httpclient.WithHTTPTimeout(timeout), httpclient.WithRetryCount(0)),
		endpoint: strings.TrimSuffix(config.Server, "/") + endpointPath,
		logger:   logger.Named("session"),
		statsd:   client,
	}
}

func (s *Session) Endpoint() string {
	return s.endpoint
}

// Authenticated reports whether a session token is held.
func (s *Session) Authenticated() bool {
	return s.auth != nil
}

// Authenticate logs in and keeps the session token for all later calls.
// A rejected login is reported as false, not as an error.
func (s *Session) Authenticate(ctx context.Context, user, password string) (bool, error) {
	raw, err := s.Call(ctx, "user.login", Params{"user": user, "password": password})
	if err != nil {
		if Code(err) != CodeFailedAuth {
			return false, err
		}
		s.logger.Infof("Login rejected for user %s", user)
		return false, nil
	}

	var token any
	if err := Decode(raw, &token); err != nil {
		return false, err
	}
	switch t := token.(type) {
	case nil:
		return false, nil
	case string:
		if t == "" {
			return false, nil
		}
		s.auth = &t
		s.logger.Debugf("Authenticated as %s", user)
		return true, nil
	default:
		return false, InvalidJSON(string(raw))
	}
}

// Call performs one remote method call and returns the raw result member of the reply.
func (s *Session) Call(ctx context.Context, method string, params Params) (json.RawMessage, error) {
	if params == nil {
		params = Params{}
	}
	id := s.id
	payload, err := json.Marshal(&request{
		JSONRPC: rpcVersion,
		Method:  method,
		Params:  params,
		ID:      id,
		Auth:    s.auth,
	})
	if err != nil {
		return nil, fmt.Errorf("could not encode %s request: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	tags := []string{fmt.Sprintf("method:%s", method)}
	start := time.Now()
	res, err := s.client.Do(req)
	s.id++
	_ = s.statsd.Timing("zabbix.rpc.time", time.Since(start), tags, 1)
	_ = s.statsd.Incr("zabbix.rpc.count", tags, 1)
	if err != nil {
		s.logger.Warnf("Call %s failed: %v", method, err)
		_ = s.statsd.Incr("zabbix.rpc.error", tags, 1)
		return nil, fmt.Errorf("call %s: %w", method, err)
	}
	defer func() {
		_ = res.Body.Close()
	}()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s reply: %w", method, err)
	}

	result, err := parseReply(body)
	if err != nil {
		s.logger.Warnf("Call %s (id %d) returned %v", method, id, err)
		_ = s.statsd.Incr("zabbix.rpc.error", tags, 1)
		return nil, err
	}
	s.logger.Debugf("Reply from %s (id %d): %s", method, id, result)
	return result, nil
}

func parseReply(body []byte) (json.RawMessage, error) {
	if len(body) == 0 {
		return nil, EmptyReply()
	}
	r := &reply{}
	if err := json.Unmarshal(body, r); err != nil {
		return nil, InvalidJSON(string(body))
	}
	if r.Error != nil {
		return nil, &Error{Code: r.Error.Code, Message: r.Error.Message, Data: r.Error.Data}
	}
	return r.Result, nil
}
