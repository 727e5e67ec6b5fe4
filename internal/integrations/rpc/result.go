package rpc

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	successPrefix = "SUCCESS:"
	errorPrefix   = "ERROR:"
)

// Result is the normalized outcome of a stored procedure call.
type Result struct {
	Success bool
	Message string
	// Raw holds the untouched response body.
	Raw string
}

type structuredResult struct {
	Success *bool   `json:"success"`
	Error   *string `json:"error"`
	Message *string `json:"message"`
	Code    *string `json:"code"`
	Details *string `json:"details"`
}

// ParseResult turns a procedure response body into a Result.
// Accepted shapes:
//
//	"SUCCESS: done" / "ERROR: reason"   (text, JSON-encoded or bare)
//	{"success": true|false, "error": "...", "message": "..."}
//	true / false
//
// Platform error bodies ({"code": ..., "message": ...} or a bare {"error": ...})
// are not procedure outcomes and yield ErrPlatform.
func ParseResult(body string) (*Result, error) {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty body", ErrInvalidResponse)
	}

	var decoded interface{}
	if err := json.Unmarshal([]byte(trimmed), &decoded); err != nil {
		// Процедуры, возвращающие text, иногда приходят без JSON-кавычек
		return parseText(trimmed, body)
	}

	switch v := decoded.(type) {
	case string:
		return parseText(v, body)
	case bool:
		return &Result{Success: v, Raw: body}, nil
	case map[string]interface{}:
		return parseObject(trimmed, body)
	case []interface{}:
		if len(v) == 1 {
			inner, err := json.Marshal(v[0])
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
			}
			res, err := ParseResult(string(inner))
			if err != nil {
				return nil, err
			}
			res.Raw = body
			return res, nil
		}
	case nil:
		// void-процедура
		return &Result{Success: true, Raw: body}, nil
	}

	return nil, fmt.Errorf("%w: unsupported shape: %s", ErrInvalidResponse, trimmed)
}

func parseText(text, raw string) (*Result, error) {
	t := strings.TrimSpace(text)
	switch {
	case hasPrefixFold(t, successPrefix):
		return &Result{Success: true, Message: strings.TrimSpace(t[len(successPrefix):]), Raw: raw}, nil
	case hasPrefixFold(t, errorPrefix):
		return &Result{Success: false, Message: strings.TrimSpace(t[len(errorPrefix):]), Raw: raw}, nil
	}
	return nil, fmt.Errorf("%w: unexpected text %q", ErrInvalidResponse, t)
}

func parseObject(trimmed, raw string) (*Result, error) {
	var obj structuredResult
	if err := json.Unmarshal([]byte(trimmed), &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	if obj.Success != nil {
		res := &Result{Success: *obj.Success, Raw: raw}
		switch {
		case obj.Error != nil && *obj.Error != "":
			res.Message = *obj.Error
		case obj.Message != nil:
			res.Message = *obj.Message
		}
		return res, nil
	}

	// Ошибка самой платформы: {"code": ..., "message": ..., "details": ...}
	if obj.Code != nil && obj.Message != nil {
		return nil, fmt.Errorf("%w: code=%s: %s", ErrPlatform, *obj.Code, *obj.Message)
	}
	if obj.Error != nil {
		return nil, fmt.Errorf("%w: %s", ErrPlatform, *obj.Error)
	}

	return nil, fmt.Errorf("%w: object without success flag: %s", ErrInvalidResponse, trimmed)
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
