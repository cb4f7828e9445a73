package odoo

import (
	"encoding/base64"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
)

// ── Codec XML-RPC ─────────────────────────────────────────────────────────────
//
// Tipos Go ↔ XML-RPC:
//   int/int64      ↔ <int>       (al decodificar: int)
//   bool           ↔ <boolean>
//   string         ↔ <string>    (o texto sin tipo)
//   float64        ↔ <double>
//   decimal        → <double>
//   time.Time      ↔ <dateTime.iso8601>
//   []byte         ↔ <base64>
//   []any          ↔ <array>
//   map[string]any ↔ <struct>
//   nil            ↔ <nil/>

const dateTimeISO = "20060102T15:04:05"

// Fault error devuelto por el servidor (<fault>).
type Fault struct {
	Code   int
	String string
}

func (f *Fault) Error() string {
	return fmt.Sprintf("xmlrpc fault %d: %s", f.Code, f.String)
}

// encodeCall serializa un <methodCall>.
func encodeCall(method string, params ...any) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	call := doc.CreateElement("methodCall")
	call.CreateElement("methodName").SetText(method)
	ps := call.CreateElement("params")
	for i, p := range params {
		v := ps.CreateElement("param").CreateElement("value")
		if err := encodeValue(v, p); err != nil {
			return nil, fmt.Errorf("xmlrpc: parámetro %d de %s: %w", i, method, err)
		}
	}
	return doc.WriteToBytes()
}

func encodeValue(v *etree.Element, x any) error {
	switch t := x.(type) {
	case nil:
		v.CreateElement("nil")
	case string:
		v.CreateElement("string").SetText(t)
	case bool:
		if t {
			v.CreateElement("boolean").SetText("1")
		} else {
			v.CreateElement("boolean").SetText("0")
		}
	case int:
		v.CreateElement("int").SetText(strconv.Itoa(t))
	case int64:
		v.CreateElement("int").SetText(strconv.FormatInt(t, 10))
	case float64:
		v.CreateElement("double").SetText(strconv.FormatFloat(t, 'f', -1, 64))
	case decimal.Decimal:
		v.CreateElement("double").SetText(t.String())
	case time.Time:
		v.CreateElement("dateTime.iso8601").SetText(t.UTC().Format(dateTimeISO))
	case []byte:
		v.CreateElement("base64").SetText(base64.StdEncoding.EncodeToString(t))
	case []any:
		data := v.CreateElement("array").CreateElement("data")
		for _, item := range t {
			if err := encodeValue(data.CreateElement("value"), item); err != nil {
				return err
			}
		}
	case []string:
		data := v.CreateElement("array").CreateElement("data")
		for _, item := range t {
			data.CreateElement("value").CreateElement("string").SetText(item)
		}
	case map[string]any:
		st := v.CreateElement("struct")
		for name, item := range t {
			m := st.CreateElement("member")
			m.CreateElement("name").SetText(name)
			if err := encodeValue(m.CreateElement("value"), item); err != nil {
				return fmt.Errorf("miembro %q: %w", name, err)
			}
		}
	default:
		return fmt.Errorf("tipo no soportado %T", x)
	}
	return nil
}

// decodeResponse interpreta un <methodResponse>: el valor de retorno o un *Fault.
func decodeResponse(body []byte) (any, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return nil, fmt.Errorf("xmlrpc: respuesta no es XML: %w", err)
	}
	root := doc.SelectElement("methodResponse")
	if root == nil {
		return nil, fmt.Errorf("xmlrpc: falta methodResponse")
	}
	if fault := root.FindElement("./fault/value"); fault != nil {
		raw, err := decodeValue(fault)
		if err != nil {
			return nil, err
		}
		m, _ := raw.(map[string]any)
		f := &Fault{}
		if code, ok := m["faultCode"].(int); ok {
			f.Code = code
		}
		f.String, _ = m["faultString"].(string)
		return nil, f
	}
	v := root.FindElement("./params/param/value")
	if v == nil {
		return nil, fmt.Errorf("xmlrpc: respuesta sin valor")
	}
	return decodeValue(v)
}

func decodeValue(v *etree.Element) (any, error) {
	children := v.ChildElements()
	if len(children) == 0 {
		return v.Text(), nil
	}
	typed := children[0]
	text := strings.TrimSpace(typed.Text())
	switch typed.Tag {
	case "string":
		return typed.Text(), nil
	case "int", "i4", "i8":
		n, err := strconv.Atoi(text)
		if err != nil {
			return nil, fmt.Errorf("xmlrpc: entero inválido %q", text)
		}
		return n, nil
	case "boolean":
		return text == "1" || strings.EqualFold(text, "true"), nil
	case "double":
		f, err := strconv.ParseFloat(text, 64)
		if err != nil || math.IsNaN(f) {
			return nil, fmt.Errorf("xmlrpc: double inválido %q", text)
		}
		return f, nil
	case "dateTime.iso8601":
		t, err := time.Parse(dateTimeISO, text)
		if err != nil {
			return nil, fmt.Errorf("xmlrpc: fecha inválida %q", text)
		}
		return t, nil
	case "base64":
		b, err := base64.StdEncoding.DecodeString(text)
		if err != nil {
			return nil, fmt.Errorf("xmlrpc: base64 inválido")
		}
		return b, nil
	case "nil":
		return nil, nil
	case "array":
		out := []any{}
		data := typed.SelectElement("data")
		if data == nil {
			return out, nil
		}
		for _, item := range data.SelectElements("value") {
			x, err := decodeValue(item)
			if err != nil {
				return nil, err
			}
			out = append(out, x)
		}
		return out, nil
	case "struct":
		out := map[string]any{}
		for _, m := range typed.SelectElements("member") {
			name := m.SelectElement("name")
			val := m.SelectElement("value")
			if name == nil || val == nil {
				continue
			}
			x, err := decodeValue(val)
			if err != nil {
				return nil, err
			}
			out[name.Text()] = x
		}
		return out, nil
	}
	return nil, fmt.Errorf("xmlrpc: tipo desconocido <%s>", typed.Tag)
}
