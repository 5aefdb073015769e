package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

type captured struct {
	contentType string
	path        string
	body        map[string]any
}

func serverMock(t *testing.T, replies ...string) (*httptest.Server, *[]captured) {
	seen := &[]captured{}
	handler := http.NewServeMux()
	handler.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		body := map[string]any{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("request body is not json: %v", err)
		}
		*seen = append(*seen, captured{
			contentType: r.Header.Get("Content-Type"),
			path:        r.URL.Path,
			body:        body,
		})
		n := len(*seen) - 1
		if n < len(replies) {
			_, _ = w.Write([]byte(replies[n]))
		}
	})
	return httptest.NewServer(handler), seen
}

func testSession(url string) *Session {
	return NewSession(Config{Server: url}, zap.NewNop().Sugar(), nil)
}

func TestCallEnvelope(t *testing.T) {
	srv, seen := serverMock(t, `{"jsonrpc":"2.0","result":[],"id":0}`, `{"jsonrpc":"2.0","result":[],"id":1}`)
	defer srv.Close()

	s := testSession(srv.URL)
	if _, err := s.Call(context.Background(), "host.get", Params{"output": "extend"}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Call(context.Background(), "host.get", nil); err != nil {
		t.Fatal(err)
	}

	if len(*seen) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(*seen))
	}
	first := (*seen)[0]
	if first.path != "/api_jsonrpc.php" {
		t.Errorf("unexpected path %s", first.path)
	}
	if first.contentType != "application/json-rpc" {
		t.Errorf("unexpected content type %s", first.contentType)
	}
	if first.body["jsonrpc"] != "2.0" || first.body["method"] != "host.get" {
		t.Errorf("unexpected envelope %v", first.body)
	}
	if auth, ok := first.body["auth"]; !ok || auth != nil {
		t.Errorf("expected null auth before login, got %v", auth)
	}
	if first.body["id"] != float64(0) || (*seen)[1].body["id"] != float64(1) {
		t.Errorf("expected sequence ids 0 and 1, got %v and %v", first.body["id"], (*seen)[1].body["id"])
	}
	params := first.body["params"].(map[string]any)
	if params["output"] != "extend" {
		t.Errorf("params not forwarded: %v", params)
	}
}

func TestAuthenticate(t *testing.T) {
	t.Run("token is sent on later calls", func(t *testing.T) {
		srv, seen := serverMock(t, `{"jsonrpc":"2.0","result":"0424bd59b807674191e7d77572075f33","id":0}`, `{"result":[]}`)
		defer srv.Close()

		s := testSession(srv.URL)
		ok, err := s.Authenticate(context.Background(), "Admin", "zabbix")
		if err != nil || !ok {
			t.Fatalf("expected successful login, got %v %v", ok, err)
		}
		if !s.Authenticated() {
			t.Error("expected session to hold a token")
		}
		_, _ = s.Call(context.Background(), "host.get", nil)

		login := (*seen)[0].body
		if login["method"] != "user.login" {
			t.Errorf("unexpected login method %v", login["method"])
		}
		params := login["params"].(map[string]any)
		if params["user"] != "Admin" || params["password"] != "zabbix" {
			t.Errorf("unexpected login params %v", params)
		}
		if (*seen)[1].body["auth"] != "0424bd59b807674191e7d77572075f33" {
			t.Errorf("expected token on call, got %v", (*seen)[1].body["auth"])
		}
	})

	t.Run("rejected login is false without error", func(t *testing.T) {
		srv, seen := serverMock(t,
			`{"jsonrpc":"2.0","error":{"code":-32602,"message":"Invalid params.","data":"Login name or password is incorrect."},"id":0}`,
			`{"result":[]}`)
		defer srv.Close()

		s := testSession(srv.URL)
		ok, err := s.Authenticate(context.Background(), "Admin", "wrong")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if ok || s.Authenticated() {
			t.Error("expected failed login")
		}
		_, _ = s.Call(context.Background(), "host.get", nil)
		if (*seen)[1].body["auth"] != nil {
			t.Errorf("expected null auth, got %v", (*seen)[1].body["auth"])
		}
	})

	t.Run("other error codes propagate", func(t *testing.T) {
		srv, _ := serverMock(t, `{"jsonrpc":"2.0","error":{"code":-32500,"message":"Application error.","data":"No permissions."},"id":0}`)
		defer srv.Close()

		s := testSession(srv.URL)
		ok, err := s.Authenticate(context.Background(), "Admin", "zabbix")
		if ok || err == nil {
			t.Fatalf("expected error, got %v %v", ok, err)
		}
		if Code(err) != -32500 {
			t.Errorf("expected code -32500, got %d", Code(err))
		}
	})
}

func TestCallFailures(t *testing.T) {
	t.Run("empty body", func(t *testing.T) {
		srv, _ := serverMock(t, "")
		defer srv.Close()

		_, err := testSession(srv.URL).Call(context.Background(), "host.get", nil)
		if !errors.Is(err, ErrEmptyReply) {
			t.Errorf("expected empty reply error, got %v", err)
		}
		if !IsProtocol(err) || IsValidation(err) {
			t.Errorf("expected protocol error, got %v", err)
		}
	})

	t.Run("unparseable body", func(t *testing.T) {
		srv, _ := serverMock(t, "<html>oops</html>")
		defer srv.Close()

		_, err := testSession(srv.URL).Call(context.Background(), "host.get", nil)
		if !errors.Is(err, ErrInvalidJSON) {
			t.Fatalf("expected invalid json error, got %v", err)
		}
		var e *Error
		errors.As(err, &e)
		if e.Data != "<html>oops</html>" {
			t.Errorf("expected body as detail, got %v", e.Data)
		}
	})

	t.Run("error object", func(t *testing.T) {
		srv, _ := serverMock(t, `{"jsonrpc":"2.0","error":{"code":-32602,"message":"Invalid params.","data":"No groups for host."},"id":0}`)
		defer srv.Close()

		_, err := testSession(srv.URL).Call(context.Background(), "host.create", nil)
		var e *Error
		if !errors.As(err, &e) {
			t.Fatalf("expected *Error, got %v", err)
		}
		if e.Code != CodeFailedAuth || e.Message != "Invalid params." || e.Data != "No groups for host." {
			t.Errorf("unexpected error %v", e)
		}
	})

	t.Run("sequence advances after failures", func(t *testing.T) {
		srv, seen := serverMock(t, "", `{"result":[]}`)
		defer srv.Close()

		s := testSession(srv.URL)
		_, _ = s.Call(context.Background(), "host.get", nil)
		_, _ = s.Call(context.Background(), "host.get", nil)
		if (*seen)[1].body["id"] != float64(1) {
			t.Errorf("expected id 1, got %v", (*seen)[1].body["id"])
		}
	})
}

func TestDecodeIDs(t *testing.T) {
	ids, err := DecodeIDs(json.RawMessage(`{"groupids":["42", 7]}`), "groupids")
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 2 || ids[0] != "42" || ids[1] != "7" {
		t.Errorf("unexpected ids %v", ids)
	}

	ids, err = DecodeIDs(json.RawMessage(`{}`), "hostids")
	if err != nil || len(ids) != 0 {
		t.Errorf("expected empty list, got %v %v", ids, err)
	}
}
