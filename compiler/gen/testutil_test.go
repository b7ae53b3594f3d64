package gen

import (
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/syssam/odatagen/compiler/load"
	"github.com/syssam/odatagen/schema/edmx"
)

func testDocument(t *testing.T) *edmx.Document {
	t.Helper()
	data, err := os.ReadFile("testdata/metadata.xml")
	require.NoError(t, err)
	doc, err := edmx.ParseBytes(data)
	require.NoError(t, err)
	return doc
}

func testEntity(t *testing.T, name string) *load.Entity {
	t.Helper()
	e, err := load.Find(testDocument(t), name)
	require.NoError(t, err)
	return e
}

func testLogger() (*logrus.Logger, *test.Hook) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	return log, hook
}

func entriesAt(hook *test.Hook, level logrus.Level) []*logrus.Entry {
	var out []*logrus.Entry
	for _, e := range hook.AllEntries() {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

func fieldNames(s *Struct) []string {
	names := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		names = append(names, f.Name)
	}
	return names
}
