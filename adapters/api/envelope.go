package api

import (
	"github.com/tidwall/gjson"

	"gofarma/domain/report"
	"gofarma/internal/errors"
)

// EstadoExito is the estado value of a successful API answer.
const EstadoExito = "exito"

// Envelope is the API response shape {estado, datos, mensaje}.
type Envelope struct {
	Estado  string
	Mensaje string
	Datos   gjson.Result
}

// DecodeEnvelope parses an API response body.
func DecodeEnvelope(body []byte) (*Envelope, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.Transport("response is not valid JSON", nil)
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, errors.MalformedPayload("response is not a JSON object")
	}
	return &Envelope{
		Estado:  root.Get("estado").String(),
		Mensaje: root.Get("mensaje").String(),
		Datos:   root.Get("datos"),
	}, nil
}

// Success reports whether estado is "exito".
func (e *Envelope) Success() bool {
	return e.Estado == EstadoExito
}

// Rows returns datos as report rows, keeping each object's key order. An
// unsuccessful estado yields an EmptyResult error carrying mensaje.
func (e *Envelope) Rows() ([]report.Row, error) {
	if !e.Success() {
		return nil, errors.EmptyResult(e.Mensaje)
	}
	if !e.Datos.IsArray() {
		return nil, errors.MalformedPayload("datos is not an array")
	}

	items := e.Datos.Array()
	rows := make([]report.Row, 0, len(items))
	for _, item := range items {
		if !item.IsObject() {
			return nil, errors.MalformedPayload("datos contains a non-object element")
		}
		rows = append(rows, rowFromResult(item))
	}
	return rows, nil
}

// Record returns datos as a single row, for endpoints answering with one
// domain object such as the dashboard summary.
func (e *Envelope) Record() (report.Row, error) {
	if !e.Success() {
		return report.Row{}, errors.EmptyResult(e.Mensaje)
	}
	if !e.Datos.IsObject() {
		return report.Row{}, errors.MalformedPayload("datos is not an object")
	}
	return rowFromResult(e.Datos), nil
}

func rowFromResult(obj gjson.Result) report.Row {
	var row report.Row
	obj.ForEach(func(key, value gjson.Result) bool {
		row.Set(key.String(), valueFromResult(value))
		return true
	})
	return row
}

func valueFromResult(v gjson.Result) report.Value {
	switch v.Type {
	case gjson.Null:
		return report.Null()
	case gjson.True, gjson.False:
		return report.Bool(v.Bool())
	case gjson.Number:
		return report.Number(v.Raw)
	case gjson.String:
		return report.Text(v.String())
	default:
		return report.Raw(v.Raw)
	}
}
