//nolint:errcheck // Example cleanup error handling is intentionally ignored
package csvsearch_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/nao1215/csvsearch"
	"github.com/nao1215/csvsearch/domain/model"
)

// createTempTestData writes a small employees file and returns its directory.
func createTempTestData() string {
	tmpDir, err := os.MkdirTemp("", "csvsearch_example")
	if err != nil {
		log.Fatal(err)
	}

	employees := `Employee ID,Full Name,Dept,Salary
1,Alice Johnson,eng,95000
2,Bob Smith,eng,85000
3,Carol Davis,sales,70000
`
	if err := os.WriteFile(filepath.Join(tmpDir, "employees.csv"), []byte(employees), 0o600); err != nil {
		log.Fatal(err)
	}
	return tmpDir
}

// ExampleSession_RunBatch loads a CSV file and runs several statements in one
// batch. Header fields are sanitized into column names.
func ExampleSession_RunBatch() {
	tmpDir := createTempTestData()
	defer os.RemoveAll(tmpDir)

	db, err := csvsearch.OpenDatabase(csvsearch.MemoryTarget)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	ctx := context.Background()
	session := csvsearch.NewSession(db, csvsearch.WithOutput(os.Stdout, os.Stdout))
	if _, err := session.Loader().LoadFile(ctx, filepath.Join(tmpDir, "employees.csv"), csvsearch.LoadOptions{}); err != nil {
		log.Fatal(err)
	}

	session.RunBatch(ctx, `
		SELECT Dept, count(*) AS people FROM employees GROUP BY Dept ORDER BY Dept >>;
		SELECT Full_Name FROM employees WHERE CAST(Salary AS INTEGER) > 90000 >>;
		SELECT * FROM employees >> !
	`)
	// Output:
	// Dept,people
	// eng,2
	// sales,1
	// Full_Name
	// Alice Johnson
}

// ExampleLoader_LoadReader loads piped data with a raw column definition.
func ExampleLoader_LoadReader() {
	db, err := csvsearch.OpenDatabase(csvsearch.MemoryTarget)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	loader := csvsearch.NewLoader(db)
	relations, err := loader.LoadReader(context.Background(), strings.NewReader("id\tscore\n1\t9.5\n2\t7\n"), csvsearch.LoadOptions{
		TableName:        "input",
		ColumnDefinition: "id INTEGER PRIMARY KEY, score REAL",
		FileType:         model.FileTypeTSV,
	})
	if err != nil {
		log.Fatal(err)
	}

	for _, r := range relations {
		fmt.Printf("%s %v %d\n", r.Name, r.Columns, r.Rows)
	}
	// Output:
	// input [id score] 2
}

// ExampleClassify shows how statements map to commands.
func ExampleClassify() {
	kw := csvsearch.DefaultKeywords()
	for _, stmt := range []string{"tables", "columns users", "import data.csv as d", "select 1 >> out.csv", "select 1 >> !"} {
		cmd := csvsearch.Classify(stmt, kw)
		fmt.Printf("%-8s arg=%q as=%q mode=%s target=%q\n", cmd.Kind, cmd.Arg, cmd.As, cmd.Directive.Mode, cmd.Directive.Target)
	}
	// Output:
	// tables   arg="" as="" mode=screen target=""
	// columns  arg="users" as="" mode=screen target=""
	// import   arg="data.csv" as="d" mode=screen target=""
	// query    arg="" as="" mode=redirect target="out.csv"
	// query    arg="" as="" mode=suppress target=""
}
