package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const unambiguousGrammar = "" +
	"%start S\n" +
	"%end end\n" +
	"%terminal x\n" +
	"%intermediate\n" +
	"%grammar\n" +
	"S: x [p1] ;\n"

// ambiguousGrammar is the classic dangling-else grammar, genuinely
// ambiguous (not merely non-LALR): after `if S`, the parser cannot
// decide between reducing by p1 and shifting `else` to continue p2.
const ambiguousGrammar = "" +
	"%start S\n" +
	"%end end\n" +
	"%terminal if else x\n" +
	"%intermediate\n" +
	"%grammar\n" +
	"S: if S [p1]\n" +
	" | if S else S [p2]\n" +
	" | x [p3]\n" +
	" ;\n"

func writeGrammar(t *testing.T, dir, contents string) string {
	t.Helper()
	path := filepath.Join(dir, "grammar.y")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write grammar fixture: %v", err)
	}
	return path
}

func Test_Run_ProducesTable(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	inputFile := writeGrammar(t, dir, unambiguousGrammar)
	outputFile := filepath.Join(dir, "grammar.csv")

	var stderr bytes.Buffer
	err := Run(inputFile, outputFile, &stderr)
	assert.NoError(err)
	assert.Empty(stderr.String())

	out, err := os.ReadFile(outputFile)
	assert.NoError(err)
	assert.Contains(string(out), "\r\n")
	assert.Contains(string(out), ",x")
}

func Test_Run_ReportsConflicts(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	inputFile := writeGrammar(t, dir, ambiguousGrammar)
	outputFile := filepath.Join(dir, "grammar.csv")

	var stderr bytes.Buffer
	err := Run(inputFile, outputFile, &stderr)
	assert.Error(err)
	assert.Contains(stderr.String(), "conflict")

	_, statErr := os.Stat(outputFile)
	assert.True(os.IsNotExist(statErr), "no table should be written when conflicts are detected")
}

func Test_Run_MissingInputFile(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	err := Run(filepath.Join(dir, "missing.y"), filepath.Join(dir, "missing.csv"), &bytes.Buffer{})
	assert.Error(err)
}

func Test_RootCommand_DefaultOutputFile(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	inputFile := writeGrammar(t, dir, unambiguousGrammar)

	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand(&stdout, &stderr)
	cmd.SetArgs([]string{inputFile})

	assert.NoError(cmd.Execute())

	_, err := os.Stat(inputFile + ".csv")
	assert.NoError(err)
}

func Test_RootCommand_OutputFlag(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	inputFile := writeGrammar(t, dir, unambiguousGrammar)
	outputFile := filepath.Join(dir, "out.csv")

	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand(&stdout, &stderr)
	cmd.SetArgs([]string{"-o", outputFile, inputFile})

	assert.NoError(cmd.Execute())

	_, err := os.Stat(outputFile)
	assert.NoError(err)
}

func Test_RootCommand_MissingOutputValue(t *testing.T) {
	assert := assert.New(t)

	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand(&stdout, &stderr)
	cmd.SetArgs([]string{"-o"})

	assert.Error(cmd.Execute())
}

func Test_RootCommand_TooManyArgs(t *testing.T) {
	assert := assert.New(t)

	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand(&stdout, &stderr)
	cmd.SetArgs([]string{"a", "b"})

	assert.Error(cmd.Execute())
}

func Test_RootCommand_UnknownFlag(t *testing.T) {
	assert := assert.New(t)

	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand(&stdout, &stderr)
	cmd.SetArgs([]string{"-a", "gluttony.y"})

	err := cmd.Execute()
	assert.Error(err)
	assert.True(strings.Contains(err.Error(), "unknown") || strings.Contains(err.Error(), "flag"))
}
