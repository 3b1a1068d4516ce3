package gremlex

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// typedValue is the GraphSON-v3 typed-JSON envelope: {"@type": T, "@value": V}.
type typedValue struct {
	Type  string          `json:"@type"`
	Value json.RawMessage `json:"@value"`
}

// decodeGraphSON decodes a single GraphSON-v3 value (typed or plain) into a
// domain value: a primitive, Set, GMap, Vertex, Edge, VertexProperty, Path,
// []interface{}, or map[string]interface{} for untyped objects.
func decodeGraphSON(raw json.RawMessage) (interface{}, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	switch trimmed[0] {
	case '{':
		var tv typedValue
		if err := json.Unmarshal(trimmed, &tv); err != nil {
			return nil, err
		}
		if tv.Type != "" {
			return decodeTyped(tv.Type, tv.Value)
		}
		var m map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &m); err != nil {
			return nil, err
		}
		out := make(map[string]interface{}, len(m))
		for k, v := range m {
			dv, err := decodeGraphSON(v)
			if err != nil {
				return nil, err
			}
			out[k] = dv
		}
		return out, nil
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, err
		}
		out := make([]interface{}, len(items))
		for i, it := range items {
			dv, err := decodeGraphSON(it)
			if err != nil {
				return nil, err
			}
			out[i] = dv
		}
		return out, nil
	default:
		return decodePrimitive(trimmed)
	}
}

func decodePrimitive(raw []byte) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if n, ok := v.(json.Number); ok {
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
		f, err := n.Float64()
		if err != nil {
			return nil, err
		}
		return f, nil
	}
	return v, nil
}

func decodeTyped(typ string, raw json.RawMessage) (interface{}, error) {
	switch typ {
	case "g:Int32", "g:Int64":
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		i, err := n.Int64()
		if err != nil {
			return nil, err
		}
		return i, nil
	case "g:Double", "g:Float":
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		f, err := n.Float64()
		if err != nil {
			return nil, err
		}
		return f, nil
	case "g:UUID":
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		return s, nil
	case "g:Date", "g:Timestamp":
		var micros int64
		if err := json.Unmarshal(raw, &micros); err != nil {
			return nil, err
		}
		return time.UnixMicro(micros).UTC(), nil
	case "g:List":
		return decodeList(raw)
	case "g:Set":
		list, err := decodeList(raw)
		if err != nil {
			return nil, err
		}
		return Set(list), nil
	case "g:Map":
		return decodeMap(raw)
	case "g:Vertex":
		return decodeVertex(raw)
	case "g:Edge":
		return decodeEdge(raw)
	case "g:VertexProperty":
		return decodeVertexProperty(raw)
	case "g:Path":
		return decodePath(raw)
	default:
		return decodeGraphSON(raw)
	}
}

func decodeList(raw json.RawMessage) ([]interface{}, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	out := make([]interface{}, len(items))
	for i, it := range items {
		dv, err := decodeGraphSON(it)
		if err != nil {
			return nil, err
		}
		out[i] = dv
	}
	return out, nil
}

// decodeMap decodes a g:Map's @value: a flat list of alternating keys and
// values. A key that is itself a typed value is decoded and its inner value
// used as the real map key.
func decodeMap(raw json.RawMessage) (GMap, error) {
	var flat []json.RawMessage
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, err
	}
	out := make(GMap, len(flat)/2)
	for i := 0; i+1 < len(flat); i += 2 {
		key, err := decodeGraphSON(flat[i])
		if err != nil {
			return nil, err
		}
		val, err := decodeGraphSON(flat[i+1])
		if err != nil {
			return nil, err
		}
		out[key] = val
	}
	return out, nil
}

type vertexWire struct {
	ID         json.RawMessage            `json:"id"`
	Label      string                     `json:"label"`
	Properties map[string][]json.RawMessage `json:"properties"`
}

func decodeVertex(raw json.RawMessage) (Vertex, error) {
	var w vertexWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return Vertex{}, err
	}
	id, err := decodeGraphSON(w.ID)
	if err != nil {
		return Vertex{}, err
	}
	props := make(map[string][]interface{}, len(w.Properties))
	for key, objs := range w.Properties {
		for _, obj := range objs {
			valueRaw, err := propertyValueRaw(obj)
			if err != nil {
				return Vertex{}, err
			}
			dv, err := decodeGraphSON(valueRaw)
			if err != nil {
				return Vertex{}, err
			}
			props[key] = append(props[key], dv)
		}
	}
	return Vertex{ID: id, Label: w.Label, Properties: props}, nil
}

// propertyValueRaw extracts the "value" field from a property object, which
// may itself be wrapped as a typed g:VertexProperty value.
func propertyValueRaw(obj json.RawMessage) (json.RawMessage, error) {
	var tv typedValue
	if err := json.Unmarshal(obj, &tv); err == nil && tv.Type == "g:VertexProperty" {
		obj = tv.Value
	}
	var inner struct {
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(obj, &inner); err != nil {
		return nil, err
	}
	return inner.Value, nil
}

type edgeWire struct {
	ID         json.RawMessage            `json:"id"`
	Label      string                     `json:"label"`
	InV        json.RawMessage            `json:"inV"`
	InVLabel   string                     `json:"inVLabel"`
	OutV       json.RawMessage            `json:"outV"`
	OutVLabel  string                     `json:"outVLabel"`
	Properties map[string]json.RawMessage `json:"properties"`
}

func decodeEdge(raw json.RawMessage) (Edge, error) {
	var w edgeWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return Edge{}, err
	}
	id, err := decodeGraphSON(w.ID)
	if err != nil {
		return Edge{}, err
	}
	inID, err := decodeGraphSON(w.InV)
	if err != nil {
		return Edge{}, err
	}
	outID, err := decodeGraphSON(w.OutV)
	if err != nil {
		return Edge{}, err
	}
	props := make(map[string]interface{}, len(w.Properties))
	for key, v := range w.Properties {
		dv, err := decodeGraphSON(v)
		if err != nil {
			return Edge{}, err
		}
		props[key] = dv
	}
	return Edge{
		ID:         id,
		Label:      w.Label,
		InV:        Vertex{ID: inID, Label: w.InVLabel},
		OutV:       Vertex{ID: outID, Label: w.OutVLabel},
		Properties: props,
	}, nil
}

type vertexPropertyWire struct {
	ID         json.RawMessage            `json:"id"`
	Value      json.RawMessage            `json:"value"`
	Vertex     json.RawMessage            `json:"vertex"`
	Label      string                     `json:"label"`
	Properties map[string]json.RawMessage `json:"properties"`
}

func decodeVertexProperty(raw json.RawMessage) (VertexProperty, error) {
	var w vertexPropertyWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return VertexProperty{}, err
	}
	id, err := decodeGraphSON(w.ID)
	if err != nil {
		return VertexProperty{}, err
	}
	value, err := decodeGraphSON(w.Value)
	if err != nil {
		return VertexProperty{}, err
	}
	vp := VertexProperty{ID: id, Value: value, Label: w.Label}
	if len(bytes.TrimSpace(w.Vertex)) > 0 {
		v, err := decodeVertex(w.Vertex)
		if err != nil {
			return VertexProperty{}, err
		}
		vp.Vertex = &v
	}
	if len(w.Properties) > 0 {
		props := make(map[string]interface{}, len(w.Properties))
		for k, v := range w.Properties {
			dv, err := decodeGraphSON(v)
			if err != nil {
				return VertexProperty{}, err
			}
			props[k] = dv
		}
		vp.Properties = props
	}
	return vp, nil
}

type pathWire struct {
	Labels  json.RawMessage `json:"labels"`
	Objects json.RawMessage `json:"objects"`
}

func decodePath(raw json.RawMessage) (Path, error) {
	var w pathWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return Path{}, err
	}
	labelsRaw, err := decodeGraphSON(w.Labels)
	if err != nil {
		return Path{}, err
	}
	labelsList, ok := labelsRaw.([]interface{})
	if !ok {
		return Path{}, fmt.Errorf("gremlex: g:Path labels had unexpected shape %T", labelsRaw)
	}
	labels := make([]Set, len(labelsList))
	for i, l := range labelsList {
		switch s := l.(type) {
		case Set:
			labels[i] = s
		case []interface{}:
			labels[i] = Set(s)
		default:
			return Path{}, fmt.Errorf("gremlex: g:Path label set had unexpected shape %T", l)
		}
	}
	objectsRaw, err := decodeGraphSON(w.Objects)
	if err != nil {
		return Path{}, err
	}
	objects, ok := objectsRaw.([]interface{})
	if !ok {
		return Path{}, fmt.Errorf("gremlex: g:Path objects had unexpected shape %T", objectsRaw)
	}
	return Path{Labels: labels, Objects: objects}, nil
}
