package errors

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestCompileError_Messages(t *testing.T) {
	tests := []struct {
		name string
		err  *CompileError
		want string
	}{
		{
			"missing title",
			MissingRequiredField("ChatApi", "title"),
			`SPC001: ChatApi: missing required field "title"`,
		},
		{
			"missing version",
			MissingRequiredField("ChatApi", "version"),
			`SPC001: ChatApi: missing required field "version"`,
		},
		{
			"invalid action",
			InvalidEnumValue("sendMessage", "action", "broadcast"),
			`SPC002: sendMessage: invalid action value "broadcast" (expected "send" or "receive")`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCompileError_JSON(t *testing.T) {
	data, err := json.Marshal(InvalidEnumValue("op", "action", "pub"))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	for _, want := range []string{`"code":"SPC002"`, `"symbol":"op"`, `"value":"pub"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("JSON missing %s: %s", want, data)
		}
	}

	data, err = json.Marshal(MissingRequiredField("spec", "title"))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if strings.Contains(string(data), `"value"`) {
		t.Errorf("empty value should be omitted: %s", data)
	}
}
