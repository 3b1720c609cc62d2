package cmd

import (
	"bytes"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/theirongolddev/costdash/internal/fixture"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	srv := httptest.NewServer(fixture.New(fixture.Config{Data: fixture.SampleData(), Months: 3}).Handler())
	t.Cleanup(srv.Close)

	flagSearch, flagExportOut = "", ""
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--base-url", srv.URL, "--log-level", "error"}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestAccountsCommand(t *testing.T) {
	out, err := runCLI(t, "accounts")
	require.NoError(t, err)
	assert.Contains(t, out, "Total Accounts")
	assert.Contains(t, out, "Acme Analytics")
	assert.Contains(t, out, "Globex Logistics")
}

func TestAccountsCommandSearchNoMatch(t *testing.T) {
	out, err := runCLI(t, "accounts", "--search", "zzz")
	require.NoError(t, err)
	assert.Contains(t, out, `No accounts found matching "zzz"`)
	assert.Contains(t, out, "showing 0 matches")
}

func TestContractsCommandUnknownAccount(t *testing.T) {
	_, err := runCLI(t, "contracts", "missing")
	require.ErrorIs(t, err, errAccountNotFound)
}

func TestContractCommand(t *testing.T) {
	data := fixture.SampleData()
	acct := data.Accounts[0]
	require.NotEmpty(t, acct.Contracts)

	out, err := runCLI(t, "contract", acct.ID, acct.Contracts[0].ContractID)
	require.NoError(t, err)
	assert.Contains(t, out, acct.Name)
	assert.Contains(t, out, "Monthly Breakdown")
	assert.Contains(t, out, "Total Variance")
}

func TestQuoteCommandRejectsNonNumeric(t *testing.T) {
	_, err := runCLI(t, "quote", "acc-1001", "abc")
	require.Error(t, err)
}

func TestQuoteCommand(t *testing.T) {
	out, err := runCLI(t, "quote", "acc-1001", "1500")
	require.NoError(t, err)
	assert.Contains(t, out, "$1,500.00")
}

func TestExportCommandWritesFile(t *testing.T) {
	data := fixture.SampleData()
	acct := data.Accounts[0]
	path := filepath.Join(t.TempDir(), "out.xlsx")

	_, err := runCLI(t, "export", acct.ID, acct.Contracts[0].ContractID, "-o", path)
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEmpty(t, b)
}

func TestExportCommandDefaultName(t *testing.T) {
	data := fixture.SampleData()
	acct := data.Accounts[0]
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	out, err := runCLI(t, "export", acct.ID, acct.Contracts[0].ContractID)
	require.NoError(t, err)

	want := acct.ID + "_" + acct.Contracts[0].ContractID + ".xlsx"
	assert.Contains(t, out, want)
	b, err := os.ReadFile(want)
	require.NoError(t, err)
	assert.Equal(t, "PK", string(b[:2]), "xlsx is a zip archive")
}

func TestExportFilenameStaysInWorkingDir(t *testing.T) {
	tests := []struct {
		account, contract, want string
	}{
		{"acc-1001", "CT-2024-001", "acc-1001_CT-2024-001.xlsx"},
		{"../x", "c1", "_x_c1.xlsx"},
		{"..", "/etc/passwd", "___etc_passwd.xlsx"},
		{"a b", `c\d`, "a_b_c_d.xlsx"},
	}
	for _, tt := range tests {
		got := exportFilename(tt.account, tt.contract, ".xlsx")
		assert.Equal(t, tt.want, got)
		assert.Equal(t, got, filepath.Base(got))
	}
}
