package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/stock-tracker/internal/engine"
)

func TestParseID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		arg     string
		want    int64
		wantErr bool
	}{
		{arg: "1", want: 1},
		{arg: "9001", want: 9001},
		{arg: "0", wantErr: true},
		{arg: "-3", wantErr: true},
		{arg: "x", wantErr: true},
	}

	for _, tt := range tests {
		got, err := parseID(tt.arg)
		if tt.wantErr {
			assert.Error(t, err, tt.arg)
			continue
		}
		require.NoError(t, err, tt.arg)
		assert.Equal(t, tt.want, got)
	}
}

func TestConfirm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		answer string
		want   bool
	}{
		{answer: "y\n", want: true},
		{answer: "YES\n", want: true},
		{answer: "oui\n", want: true},
		{answer: " o \n", want: true},
		{answer: "n\n", want: false},
		{answer: "\n", want: false},
		{answer: "", want: false},
		{answer: "yes", want: true},
	}

	for _, tt := range tests {
		var prompt bytes.Buffer
		got, err := confirm(strings.NewReader(tt.answer), &prompt, "Delete?")
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%q", tt.answer)
		assert.Equal(t, "Delete? [y/N] ", prompt.String())
	}
}

func TestEquipmentFlags_Overlay(t *testing.T) {
	t.Parallel()

	var f equipmentFlags
	cmd := &cobra.Command{Use: "modify"}
	f.bind(cmd)
	require.NoError(t, cmd.ParseFlags([]string{"--quantity", "0", "--status", "HS"}))

	base := engine.Candidate{
		Name:     "Router A",
		Type:     "CPE",
		Quantity: 4,
		Supplier: "Acme",
		Note:     "rack 2",
		Status:   "Fonctionnel",
	}

	got := f.overlay(cmd, base)
	assert.Equal(t, engine.Candidate{
		Name:     "Router A",
		Type:     "CPE",
		Quantity: 0,
		Supplier: "Acme",
		Note:     "rack 2",
		Status:   "HS",
	}, got)
}
