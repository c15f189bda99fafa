package normalizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadRows_HeaderKeyed(t *testing.T) {
	in := "payee_first_name,currency,due_amount\nGrace,USD,100\nAda,GBP,50.5\n"

	rows, err := ReadRows(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "Grace", rows[0]["payee_first_name"])
	require.Equal(t, "50.5", rows[1]["due_amount"])
}

func TestReadRows_EmptyInputFails(t *testing.T) {
	_, err := ReadRows(strings.NewReader(""))
	require.Error(t, err)
}

func TestReadRows_MalformedRowAbortsImport(t *testing.T) {
	in := "a,b\n\"unterminated\n"
	_, err := ReadRows(strings.NewReader(in))
	require.Error(t, err)
}
