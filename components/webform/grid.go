package webform

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/goliatone/go-numerology/pkg/numerology"
)

const updateGridOp = "webform.update_grid"

type updateGridRequest struct {
	BaseGrid   json.RawMessage `json:"base_grid"`
	Mahadasha  json.RawMessage `json:"mahadasha"`
	Antardasha json.RawMessage `json:"antardasha"`
}

type updateGridResponse struct {
	UpdatedGrid [][]string `json:"updated_grid"`
}

// updateGrid re-annotates a grid sent by the page script. The grid arrives
// either as form fields (base_grid holding JSON text) or as a JSON body in
// which base_grid is an array or a JSON string.
func (h *handlers) updateGrid(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodPost) {
		return
	}
	if !h.guard(w, r) {
		return
	}

	rows, mahadasha, antardasha, err := h.decodeUpdateGrid(w, r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	grid, err := h.orch.UpdateGrid(r.Context(), rows, mahadasha, antardasha)
	if err != nil {
		if numerology.IsKind(err, numerology.KindInvalidGridPayload) {
			h.badRequest(w, r, err)
			return
		}
		h.fail(w, r, "update grid", err)
		return
	}

	w.Header().Set("Content-Type", jsonContentType)
	w.WriteHeader(http.StatusOK)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(updateGridResponse{UpdatedGrid: grid.Rows()})
}

func (h *handlers) decodeUpdateGrid(w http.ResponseWriter, r *http.Request) ([][]string, int, int, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxBodyBytes)

	var (
		rawGrid        []byte
		rawMaha, rawAD string
	)
	if isJSONBody(r) {
		var payload updateGridRequest
		if err := decodeSingle(json.NewDecoder(r.Body), &payload); err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				return nil, 0, 0, err
			}
			return nil, 0, 0, gridError("base_grid", fmt.Errorf("decode body: %w", err))
		}
		rawGrid = unwrapJSONString(payload.BaseGrid)
		rawMaha = jsonScalar(payload.Mahadasha)
		rawAD = jsonScalar(payload.Antardasha)
	} else {
		if err := r.ParseForm(); err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				return nil, 0, 0, err
			}
			return nil, 0, 0, gridError("base_grid", err)
		}
		rawGrid = []byte(r.PostForm.Get("base_grid"))
		rawMaha = r.PostForm.Get("mahadasha")
		rawAD = r.PostForm.Get("antardasha")
	}

	rows, err := parseGridRows(rawGrid)
	if err != nil {
		return nil, 0, 0, err
	}
	mahadasha, err := parseLabel("mahadasha", rawMaha)
	if err != nil {
		return nil, 0, 0, err
	}
	antardasha, err := parseLabel("antardasha", rawAD)
	if err != nil {
		return nil, 0, 0, err
	}
	return rows, mahadasha, antardasha, nil
}

// decodeSingle decodes exactly one JSON value and rejects anything but
// whitespace after it.
func decodeSingle(dec *json.Decoder, v any) error {
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return err
		}
		return errors.New("unexpected data after JSON value")
	}
	return nil
}

// parseGridRows decodes a JSON array of arrays whose cells are strings,
// integers or null. Shape is checked later by numerology.GridFromRows.
func parseGridRows(raw []byte) ([][]string, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, gridError("base_grid", errors.New("missing base_grid"))
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var cells [][]any
	if err := decodeSingle(dec, &cells); err != nil {
		return nil, gridError("base_grid", fmt.Errorf("decode base_grid: %w", err))
	}

	rows := make([][]string, len(cells))
	for i, row := range cells {
		rows[i] = make([]string, len(row))
		for j, cell := range row {
			switch v := cell.(type) {
			case nil:
			case string:
				rows[i][j] = v
			case json.Number:
				n, err := v.Int64()
				if err != nil || n < 0 {
					return nil, gridError("base_grid", fmt.Errorf("cell [%d][%d]: %q is not a non-negative integer", i, j, v))
				}
				rows[i][j] = strconv.FormatInt(n, 10)
			default:
				return nil, gridError("base_grid", fmt.Errorf("cell [%d][%d]: unsupported type %T", i, j, cell))
			}
		}
	}
	return rows, nil
}

func parseLabel(field, raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, gridError(field, fmt.Errorf("%s must be an integer: %w", field, err))
	}
	return n, nil
}

// unwrapJSONString returns the text of a JSON string value, or raw unchanged
// when it is not a string.
func unwrapJSONString(raw json.RawMessage) []byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '"' {
		return trimmed
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return trimmed
	}
	return []byte(s)
}

func jsonScalar(raw json.RawMessage) string {
	return string(unwrapJSONString(raw))
}

func gridError(field string, err error) error {
	return &numerology.OpError{
		Op:    updateGridOp,
		Kind:  numerology.KindInvalidGridPayload,
		Field: field,
		Err:   err,
	}
}
