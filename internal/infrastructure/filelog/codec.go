package filelog

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jhoicas/stockout-agent/internal/domain/entity"
)

// codec serializa el log completo. Ambos formatos rechazan campos desconocidos.
type codec interface {
	encode([]entity.Decision) ([]byte, error)
	decode([]byte) ([]entity.Decision, error)
}

// codecFor elige el formato por extensión: .yaml/.yml -> YAML, resto -> JSON.
func codecFor(path string) codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yamlCodec{}
	default:
		return jsonCodec{}
	}
}

type jsonCodec struct{}

func (jsonCodec) encode(ds []entity.Decision) ([]byte, error) {
	if ds == nil {
		ds = []entity.Decision{}
	}
	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func (jsonCodec) decode(data []byte) ([]entity.Decision, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var ds []entity.Decision
	if err := dec.Decode(&ds); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("contenido adicional después del arreglo de decisiones")
	}
	if ds == nil {
		return nil, errors.New("se esperaba un arreglo de decisiones")
	}
	return ds, nil
}

type yamlCodec struct{}

func (yamlCodec) encode(ds []entity.Decision) ([]byte, error) {
	if ds == nil {
		ds = []entity.Decision{}
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(ds); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (yamlCodec) decode(data []byte) ([]entity.Decision, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var ds []entity.Decision
	if err := dec.Decode(&ds); err != nil {
		if errors.Is(err, io.EOF) {
			return []entity.Decision{}, nil
		}
		return nil, err
	}
	return ds, nil
}
