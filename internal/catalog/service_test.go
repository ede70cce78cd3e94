package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/JonMunkholm/CoursePlanner/internal/config"
)

func testConfig() config.CatalogConfig {
	return config.CatalogConfig{
		Source:             config.SourceCSV,
		MaxFileSize:        1 << 20,
		MaxConcurrentLoads: 2,
		LoadWait:           time.Second,
	}
}

var sampleRows = [][]string{
	{"CSCI100", "Introduction to Computer Science"},
	{"CSCI101", "Introduction to Programming in C++", "CSCI100"},
	{"CSCI200", "Data Structures", "CSCI101"},
	{"MATH201", "Discrete Mathematics"},
	{"CSCI300", "Introduction to Algorithms", "CSCI200", "MATH201"},
	{"CSCI301", "Advanced Programming in C++", "CSCI101"},
	{"CSCI350", "Operating Systems", "CSCI300"},
	{"CSCI400", "Large Software Development", "CSCI301", "CSCI350"},
}

func loadedService(t *testing.T) *Service {
	t.Helper()
	svc := NewService(testConfig())
	if _, err := svc.Load(context.Background(), RowsSource{Label: "sample", Data: sampleRows}); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return svc
}

func TestService_Empty(t *testing.T) {
	svc := NewService(testConfig())

	if svc.Len() != 0 {
		t.Errorf("Len() = %d, want 0", svc.Len())
	}
	if _, ok := svc.LastLoad(); ok {
		t.Error("LastLoad() reported a load on a new service")
	}
	if _, ok := svc.Course("CSCI100"); ok {
		t.Error("Course() found a course in an empty catalog")
	}
	if len(svc.Entries()) != 0 {
		t.Error("Entries() not empty")
	}
}

func TestService_Load(t *testing.T) {
	svc := loadedService(t)

	res, ok := svc.LastLoad()
	if !ok {
		t.Fatal("LastLoad() reported no load")
	}
	if res.Courses != len(sampleRows) {
		t.Errorf("Courses = %d, want %d", res.Courses, len(sampleRows))
	}
	if res.Source != "sample" {
		t.Errorf("Source = %q, want sample", res.Source)
	}
	if res.Height < 1 || res.Height > 4 {
		t.Errorf("Height = %d, want 1..4 for 8 courses", res.Height)
	}
	if err := svc.Verify(); err != nil {
		t.Errorf("Verify() = %v", err)
	}

	var ids []string
	for _, e := range svc.Entries() {
		ids = append(ids, e.ID)
	}
	if !slices.IsSorted(ids) {
		t.Errorf("Entries() not sorted: %v", ids)
	}
}

func TestService_CourseNormalizesQuery(t *testing.T) {
	svc := loadedService(t)

	c, ok := svc.Course("  csci200 ")
	if !ok {
		t.Fatal("Course() did not normalize the query")
	}
	if c.Title() != "Data Structures" {
		t.Errorf("Title() = %q", c.Title())
	}
}

func TestService_Detail(t *testing.T) {
	svc := loadedService(t)

	d, ok := svc.Detail("csci300")
	if !ok {
		t.Fatal("Detail(csci300) not found")
	}
	if d.ID != "CSCI300" {
		t.Errorf("ID = %q, want CSCI300", d.ID)
	}
	if len(d.Prerequisites) != 2 {
		t.Fatalf("Prerequisites = %v, want 2 entries", d.Prerequisites)
	}
	if d.Prerequisites[0].ID != "CSCI200" || d.Prerequisites[0].Course.Title() != "Data Structures" {
		t.Errorf("first prerequisite = %+v", d.Prerequisites[0])
	}
	if len(d.Missing) != 0 {
		t.Errorf("Missing = %v, want none", d.Missing)
	}

	if _, ok := svc.Detail("NOPE100"); ok {
		t.Error("Detail() found an unknown course")
	}
}

func TestService_InsertAndReplace(t *testing.T) {
	svc := loadedService(t)
	heightBefore := svc.index.Height()

	svc.Insert("csci200", NewCourse("Data Structures and Algorithms", []string{"CSCI101"}))
	if svc.Len() != len(sampleRows) {
		t.Errorf("Len() = %d after replace, want %d", svc.Len(), len(sampleRows))
	}
	if svc.index.Height() != heightBefore {
		t.Errorf("height changed on replace: %d -> %d", heightBefore, svc.index.Height())
	}
	c, _ := svc.Course("CSCI200")
	if c.Title() != "Data Structures and Algorithms" {
		t.Errorf("Title() = %q after replace", c.Title())
	}

	svc.Insert("CSCI500", NewCourse("Thesis", []string{"CSCI400", "CSCI999"}))
	if svc.Len() != len(sampleRows)+1 {
		t.Errorf("Len() = %d after insert, want %d", svc.Len(), len(sampleRows)+1)
	}
	d, ok := svc.Detail("CSCI500")
	if !ok {
		t.Fatal("inserted course not found")
	}
	if !slices.Equal(d.Missing, []string{"CSCI999"}) {
		t.Errorf("Missing = %v, want [CSCI999]", d.Missing)
	}
}

func TestService_FailedLoadKeepsCatalog(t *testing.T) {
	svc := loadedService(t)
	before, _ := svc.LastLoad()

	tests := []struct {
		name string
		src  Source
		want error
	}{
		{"malformed", RowsSource{Label: "bad", Data: [][]string{{"CS101"}}}, ErrMalformedRow},
		{"dangling", RowsSource{Label: "bad", Data: [][]string{{"CS201", "DS", "CS999"}}}, ErrUnresolvedPrerequisite},
		{"missing file", FileSource{Path: filepath.Join(t.TempDir(), "missing.csv")}, ErrSourceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Load(context.Background(), tt.src)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Load() error = %v, want %v", err, tt.want)
			}
			if svc.Len() != len(sampleRows) {
				t.Errorf("Len() = %d after failed load, want %d", svc.Len(), len(sampleRows))
			}
			after, _ := svc.LastLoad()
			if after.ID != before.ID {
				t.Error("LastLoad() changed after a failed load")
			}
		})
	}
}

func TestService_LoadFile(t *testing.T) {
	var b strings.Builder
	b.WriteString("\xEF\xBB\xBF")
	for _, row := range sampleRows {
		b.WriteString(strings.Join(row, ",") + "\n")
	}
	path := filepath.Join(t.TempDir(), "ABCU_Advising_Program_Input.csv")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatal(err)
	}

	svc := NewService(testConfig())
	res, err := svc.LoadFile(context.Background(), path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if res.Courses != len(sampleRows) {
		t.Errorf("Courses = %d, want %d", res.Courses, len(sampleRows))
	}
	if _, ok := svc.Course("CSCI100"); !ok {
		t.Error("first course missing, BOM not stripped?")
	}
}

func TestService_LoadReaderSizeCap(t *testing.T) {
	cfg := testConfig()
	cfg.MaxFileSize = 16
	svc := NewService(cfg)

	_, err := svc.LoadReader(context.Background(), "upload", strings.NewReader("CSCI100,Introduction to Computer Science\n"))
	if !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("LoadReader() error = %v, want ErrFileTooLarge", err)
	}
}

func TestService_Structure(t *testing.T) {
	svc := NewService(testConfig())
	_, err := svc.Load(context.Background(), RowsSource{Label: "abc", Data: [][]string{
		{"A", "Course A"}, {"B", "Course B"}, {"C", "Course C"},
	}})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	svc.DumpStructure(&buf)
	want := "          C (H=1)\nB (H=2)\n          A (H=1)\n"
	if buf.String() != want {
		t.Errorf("DumpStructure() =\n%s\nwant\n%s", buf.String(), want)
	}

	if !strings.Contains(svc.RenderStructure(), "B (H=2)") {
		t.Errorf("RenderStructure() = %s", svc.RenderStructure())
	}
}

func TestService_ConcurrentReadersDuringReload(t *testing.T) {
	svc := loadedService(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	stop := make(chan struct{})

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				// Every catalog this test loads contains CSCI100.
				if _, ok := svc.Course("CSCI100"); !ok {
					t.Error("reader saw a catalog without CSCI100")
					return
				}
				n := 0
				for range svc.All() {
					n++
				}
				if n == 0 {
					t.Error("reader saw an empty catalog")
					return
				}
			}
		}()
	}

	for i := 0; i < 20; i++ {
		rows := append(slices.Clone(sampleRows), []string{fmt.Sprintf("EXTRA%03d", i), "Extra", "CSCI100"})
		if _, err := svc.Load(ctx, RowsSource{Label: "reload", Data: rows}); err != nil {
			t.Fatalf("Load() error = %v", err)
		}
	}
	close(stop)
	wg.Wait()
}
