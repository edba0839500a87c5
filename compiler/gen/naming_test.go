package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToPascalCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"user_id", "UserId"},
		{"id", "Id"},
		{"", ""},
		{"UserId", "UserId"},
		{"a__b", "AB"},
		{"_private_", "Private"},
		{"___", ""},
		{"created_at", "CreatedAt"},
		{"HTTP_code", "HTTPCode"},
		{"user_ID", "UserID"},
		{"first_name2", "FirstName2"},
		{"2fa_secret", "2faSecret"},
		{"straße", "Straße"},
		{"ßtraße", "SStraße"},
		{"élan_vital", "ÉlanVital"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToPascalCase(tt.input))
		})
	}
}

func TestToCamelCase(t *testing.T) {
	// The setter parameter name keeps the leading capital.
	for _, s := range []string{"user_id", "id", "", "UserId", "a__b", "created_at"} {
		t.Run(s, func(t *testing.T) {
			assert.Equal(t, ToPascalCase(s), ToCamelCase(s))
		})
	}
	assert.Equal(t, "UserId", ToCamelCase("user_id"))
}

func TestExported(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"getId", "GetId"},
		{"setUserName", "SetUserName"},
		{"Get", "Get"},
		{"", ""},
		{"ébène", "Ébène"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Exported(tt.input))
		})
	}
}

func TestSnake(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"ModelUser", "model_user"},
		{"ModelHTTPLog", "model_http_log"},
		{"ModelOrderItem", "model_order_item"},
		{"ModelUser2", "model_user2"},
		{"Model_Legacy", "model_legacy"},
		{"A", "a"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Snake(tt.input))
		})
	}
}
