package agent

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGenerateDefaultConfig_ParsesToDefaults(t *testing.T) {
	cfg, err := ParseConfig(writeTemp(t, GenerateDefaultConfig()))
	if err != nil {
		t.Fatalf("ParseConfig(generated) error = %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("generated config mismatch (-want +got):\n%s", diff)
	}
}
