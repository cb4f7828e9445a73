package odoo

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ascari-panel/internal/domain"
	"github.com/jhoicas/ascari-panel/internal/domain/entity"
	"github.com/jhoicas/ascari-panel/pkg/logger"
)

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ascari.odoo.com", "https://ascari.odoo.com"},
		{"  https://ascari.odoo.com/  ", "https://ascari.odoo.com"},
		{"https://ascari.odoo.com/web#action=123&model=sale.order", "https://ascari.odoo.com"},
		{"https://ascari.odoo.com/web/login", "https://ascari.odoo.com"},
		{"ascari.odoo.com/odoo/", "https://ascari.odoo.com"},
		{"http://10.0.0.5:8069/odoo/web", "http://10.0.0.5:8069"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeURL(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := NormalizeURL("   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDecodeResponse_Fault(t *testing.T) {
	body := []byte(`<?xml version="1.0"?>
<methodResponse><fault><value><struct>
<member><name>faultCode</name><value><int>1</int></value></member>
<member><name>faultString</name><value><string>database "x" does not exist</string></value></member>
</struct></value></fault></methodResponse>`)

	_, err := decodeResponse(body)
	var fault *Fault
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, 1, fault.Code)
	assert.Contains(t, fault.String, "does not exist")
}

func TestDecodeResponse_RegistrosDeOdoo(t *testing.T) {
	body := []byte(`<?xml version="1.0"?>
<methodResponse><params><param><value><array><data>
<value><struct>
<member><name>id</name><value><int>42</int></value></member>
<member><name>name</name><value>Chester Koltuk</value></member>
<member><name>default_code</name><value><boolean>0</boolean></value></member>
<member><name>lst_price</name><value><double>12500.5</double></value></member>
<member><name>categ_id</name><value><array><data><value><int>3</int></value><value><string>Oturma</string></value></data></array></value></member>
</struct></value>
</data></array></value></param></params></methodResponse>`)

	res, err := decodeResponse(body)
	require.NoError(t, err)
	records := asRecords(res)
	require.Len(t, records, 1)
	r := records[0]
	assert.Equal(t, "42", asString(r["id"]))
	assert.Equal(t, "Chester Koltuk", asString(r["name"]))
	assert.Equal(t, "", asString(r["default_code"]), "false de Odoo se lee como vacío")
	assert.Equal(t, "12500.5", asDecimal(r["lst_price"]).String())
	id, name := many2one(r["categ_id"])
	assert.Equal(t, "3", id)
	assert.Equal(t, "Oturma", name)
}

func commonHandler(uid any) func(c recordedCall) (any, *Fault) {
	return func(c recordedCall) (any, *Fault) {
		switch c.Method {
		case "version":
			return map[string]any{"server_version": "17.0"}, nil
		case "authenticate":
			return uid, nil
		}
		return []any{}, nil
	}
}

func testConnector() *Connector {
	return NewConnector(Config{Timeout: 2 * time.Second}, logger.Nop().Zerolog())
}

func TestConnector_Connect(t *testing.T) {
	fake := newFakeOdoo(t, commonHandler(7))

	conn, err := testConnector().Connect(context.Background(), entity.Credentials{
		URL: fake.srv.URL + "/web/login", DB: "ascari", Username: "satis", Password: "gizli",
	})
	require.NoError(t, err)
	assert.Equal(t, 7, conn.UID)
	assert.Equal(t, fake.srv.URL, conn.BackendURL)
	assert.Equal(t, "17.0", conn.ServerVersion)
	require.NotNil(t, conn.Gateway)

	calls := fake.recorded()
	require.Len(t, calls, 2)
	assert.Equal(t, commonPath, calls[1].Path)
	assert.Equal(t, []any{"ascari", "satis", "gizli", map[string]any{}}, calls[1].Params)
}

func TestConnector_BajaAHTTPSiHTTPSFalla(t *testing.T) {
	fake := newFakeOdoo(t, commonHandler(3))
	hostPort := strings.TrimPrefix(fake.srv.URL, "http://")

	conn, err := testConnector().Connect(context.Background(), entity.Credentials{
		URL: hostPort, DB: "ascari", Username: "satis", Password: "gizli",
	})
	require.NoError(t, err)
	assert.Equal(t, "http://"+hostPort, conn.BackendURL)
}

func TestConnector_CredencialesInvalidas(t *testing.T) {
	fake := newFakeOdoo(t, commonHandler(false))

	_, err := testConnector().Connect(context.Background(), entity.Credentials{
		URL: fake.srv.URL, DB: "ascari", Username: "satis", Password: "mal",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestConnector_BackendCaido(t *testing.T) {
	fake := newFakeOdoo(t, commonHandler(1))
	url := fake.srv.URL
	fake.srv.Close()

	_, err := testConnector().Connect(context.Background(), entity.Credentials{
		URL: url, DB: "ascari", Username: "satis", Password: "gizli",
	})
	assert.ErrorIs(t, err, domain.ErrGatewayUnavailable)
}
