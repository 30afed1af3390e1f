// Package httpclient provides a small configurable HTTP client for calling
// remote JSON services.
//
// Requests carry default headers, optional per-request authentication and
// the active trace context. Non-2xx responses are returned together with a
// classified *Error so callers can read the remote error body.
//
//	client, err := httpclient.New(httpclient.Config{
//	    BaseURL: "https://project.supabase.co",
//	    Timeout: 10 * time.Second,
//	    Headers: map[string]string{"apikey": anonKey},
//	})
//
//	resp, err := httpclient.DoJSON[User](client, ctx, httpclient.Request{
//	    Method: http.MethodGet,
//	    Path:   "/auth/v1/user",
//	    Auth:   httpclient.BearerAuth(token),
//	})
//
// The client does not retry.
package httpclient
