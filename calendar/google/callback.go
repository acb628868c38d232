package google

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

const DefaultCallbackPath = "/callback"

var (
	ErrInvalidState = errors.New("google: oauth link is not valid")
	ErrMissingCode  = errors.New("google: authorization code not provided")
)

// CodeReceiver waits for the authorization code of an OAuth redirect.
type CodeReceiver interface {
	AwaitCode(ctx context.Context, state string) (string, error)
}

// CallbackServer receives the OAuth redirect on a local HTTP server. The
// server stops after the first request on Path.
type CallbackServer struct {
	Addr string
	Path string
}

// NewCallbackServer listens on the port of redirectURI, or on fallbackPort
// when the URI doesn't carry one.
func NewCallbackServer(redirectURI string, fallbackPort int) *CallbackServer {
	s := &CallbackServer{
		Addr: ":" + strconv.Itoa(fallbackPort),
		Path: DefaultCallbackPath,
	}
	u, err := url.Parse(redirectURI)
	if err != nil {
		return s
	}
	if port := u.Port(); port != "" {
		s.Addr = ":" + port
	}
	if u.Path != "" {
		s.Path = u.Path
	}
	return s
}

func (s *CallbackServer) AwaitCode(ctx context.Context, state string) (string, error) {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return "", fmt.Errorf("google: starting callback server: %v", err)
	}
	return s.serve(ctx, ln, state)
}

type codeOrError struct {
	code string
	err  error
}

func (s *CallbackServer) serve(ctx context.Context, ln net.Listener, state string) (string, error) {
	resultCh := make(chan codeOrError, 1)
	send := func(res codeOrError) {
		select {
		case resultCh <- res:
		default:
		}
	}

	r := chi.NewRouter()
	r.Get(s.Path, func(w http.ResponseWriter, req *http.Request) {
		query := req.URL.Query()
		if query.Get("state") != state {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintln(w, "Authentication error: the link is not valid.")
			send(codeOrError{err: ErrInvalidState})
			return
		}
		if msg := query.Get("error"); msg != "" {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintf(w, "Authentication error: %s\n", msg)
			send(codeOrError{err: fmt.Errorf("google: authorization denied: %s", msg)})
			return
		}
		code := query.Get("code")
		if code == "" {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintln(w, "Authentication error: authorization code not provided.")
			send(codeOrError{err: ErrMissingCode})
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "<html><body><h1>Authentication complete!</h1><p>You can close this window.</p></body></html>")
		send(codeOrError{code: code})
	})
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, "Page not found", http.StatusNotFound)
	})

	server := &http.Server{
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serverCh := make(chan error, 1)
	go func() {
		serverCh <- server.Serve(ln)
	}()

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	select {
	case res := <-resultCh:
		return res.code, res.err
	case err := <-serverCh:
		return "", fmt.Errorf("google: callback server: %v", err)
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
