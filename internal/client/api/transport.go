package api

import (
	"net/http"

	"github.com/crewdeck/crewdeck/internal/client/session"
)

// Transport is the outbound request interceptor. It attaches the bearer
// header when the session holds a token (and omits it entirely when not —
// blocking the call is the server gate's job), and reconciles client
// state with server authority: any 401 response, from any endpoint,
// drives the session to anonymous and fires the unauthorized hook.
type Transport struct {
	Base           http.RoundTripper
	Session        *session.Session
	OnUnauthorized func()
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	if st := t.Session.Snapshot(); st.Authenticated && out.Header.Get("Authorization") == "" {
		out.Header.Set("Authorization", "Bearer "+st.Token)
	}

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	resp, err := base.RoundTrip(out)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		// idempotent when already anonymous
		_ = t.Session.Clear()
		if t.OnUnauthorized != nil {
			t.OnUnauthorized()
		}
	}
	return resp, nil
}
