package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apiclient "github.com/donaldgifford/stock-tracker/internal/api/client"
	"github.com/donaldgifford/stock-tracker/internal/engine"
)

func TestOverlay(t *testing.T) {
	t.Parallel()

	var in apiclient.EquipmentInput
	cmd := &cobra.Command{Use: "modify"}
	bindEquipmentFlags(cmd, &in)
	require.NoError(t, cmd.ParseFlags([]string{"--note", "", "--type", "ONT"}))

	got := overlay(cmd, &in, &apiclient.EquipmentInput{
		Name:     "Router A",
		Type:     "CPE",
		Quantity: 2,
		Note:     "old",
	})
	assert.Equal(t, &apiclient.EquipmentInput{Name: "Router A", Type: "ONT", Quantity: 2}, got)
}

func TestConfirm(t *testing.T) {
	t.Parallel()

	for answer, want := range map[string]bool{"y\n": true, "oui\n": true, "no\n": false, "": false} {
		got, err := confirm(strings.NewReader(answer), io.Discard, "Delete row 1?")
		require.NoError(t, err)
		assert.Equal(t, want, got, "%q", answer)
	}
}

func TestParseID(t *testing.T) {
	t.Parallel()

	id, err := parseID("12")
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)

	_, err = parseID("twelve")
	assert.Error(t, err)
}

func TestUpload_CSVSendsRows(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/imports", r.URL.Path)

		var req apiclient.ImportRowsRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "livraison.csv", req.Source)
		assert.Nil(t, req.SkipInvalidRows)
		if assert.Len(t, req.Rows, 2) {
			assert.Equal(t, "Router A", req.Rows[0]["nom"])
			assert.Equal(t, "3", req.Rows[0]["quantite"])
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(engine.ImportReport{Processed: 2, Inserted: 2})
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "livraison.csv")
	require.NoError(t, os.WriteFile(path, []byte("Nom;Type;Quantité\nRouter A;CPE;3\nSwitch B;LAN;1\n"), 0o600))

	report, err := upload(context.Background(), apiclient.New(srv.URL), path, "", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Inserted)
}

func TestUpload_XLSXStreamsWorkbook(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/imports/xlsx", r.URL.Path)
		assert.Equal(t, "Stock", r.URL.Query().Get("sheet"))
		assert.Equal(t, "false", r.URL.Query().Get("skip_invalid"))

		body, _ := io.ReadAll(r.Body)
		assert.True(t, bytes.Equal([]byte("workbook bytes"), body))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(engine.ImportReport{Processed: 1, Merged: 1})
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "stock.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("workbook bytes"), 0o600))

	skip := false
	report, err := upload(context.Background(), apiclient.New(srv.URL), path, "Stock", &skip)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Merged)
}

func TestUpload_RejectsLegacyXLS(t *testing.T) {
	t.Parallel()

	_, err := upload(context.Background(), apiclient.New("http://127.0.0.1:1"), "old.xls", "", nil)
	require.Error(t, err)
}

func TestRoot_Commands(t *testing.T) {
	t.Parallel()

	var names []string
	for _, c := range Root().Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t,
		[]string{"list", "get", "summary", "add", "modify", "delete", "import", "digest"},
		names,
	)
}
