package odoo

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/require"
)

// call registrada por el servidor falso.
type recordedCall struct {
	Path   string
	Method string
	Model  string // solo execute_kw
	Action string // solo execute_kw
	Params []any
}

// fakeOdoo responde según la función handle; guarda todas las llamadas.
type fakeOdoo struct {
	t      *testing.T
	srv    *httptest.Server
	handle func(c recordedCall) (any, *Fault)

	mu    sync.Mutex
	calls []recordedCall
}

func newFakeOdoo(t *testing.T, handle func(c recordedCall) (any, *Fault)) *fakeOdoo {
	t.Helper()
	f := &fakeOdoo{t: t, handle: handle}
	f.srv = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeOdoo) serve(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	require.NoError(f.t, err)
	method, params := decodeCall(f.t, body)

	c := recordedCall{Path: r.URL.Path, Method: method, Params: params}
	if method == "execute_kw" && len(params) >= 5 {
		c.Model, _ = params[3].(string)
		c.Action, _ = params[4].(string)
	}
	f.mu.Lock()
	f.calls = append(f.calls, c)
	f.mu.Unlock()

	result, fault := f.handle(c)
	w.Header().Set("Content-Type", "text/xml")
	_, _ = w.Write(encodeResponse(f.t, result, fault))
}

func (f *fakeOdoo) recorded() []recordedCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedCall(nil), f.calls...)
}

func (f *fakeOdoo) find(model, action string) (recordedCall, bool) {
	for _, c := range f.recorded() {
		if c.Model == model && c.Action == action {
			return c, true
		}
	}
	return recordedCall{}, false
}

func decodeCall(t *testing.T, body []byte) (string, []any) {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(body))
	root := doc.SelectElement("methodCall")
	require.NotNil(t, root)
	var params []any
	for _, v := range root.FindElements("./params/param/value") {
		x, err := decodeValue(v)
		require.NoError(t, err)
		params = append(params, x)
	}
	return root.SelectElement("methodName").Text(), params
}

func encodeResponse(t *testing.T, result any, fault *Fault) []byte {
	t.Helper()
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0"`)
	root := doc.CreateElement("methodResponse")
	if fault != nil {
		v := root.CreateElement("fault").CreateElement("value")
		require.NoError(t, encodeValue(v, map[string]any{"faultCode": fault.Code, "faultString": fault.String}))
	} else {
		v := root.CreateElement("params").CreateElement("param").CreateElement("value")
		require.NoError(t, encodeValue(v, result))
	}
	out, err := doc.WriteToBytes()
	require.NoError(t, err)
	return out
}
