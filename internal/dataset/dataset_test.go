package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"data/train.xlsx", FormatXLSX},
		{"DATA.CSV", FormatCSV},
		{"corpus.tsv", FormatTSV},
		{"messages.json", FormatJSON},
		{"messages.PARQUET", FormatParquet},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := DetectFormat(tt.path)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("DetectFormat(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestDetectFormat_Unsupported(t *testing.T) {
	for _, path := range []string{"notes.txt", "archive.zip", "noextension"} {
		t.Run(path, func(t *testing.T) {
			_, err := DetectFormat(path)
			if !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("DetectFormat(%q) error = %v, want ErrUnsupportedFormat", path, err)
			}
		})
	}
}

func TestWithSuffix(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"data/train.csv", "data/train_resampled.csv"},
		{"train.xlsx", "train_resampled.xlsx"},
		{"deep/path/set.json", "deep/path/set_resampled.json"},
		{"noext", "noext_resampled"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := WithSuffix(tt.path, "_resampled"); got != tt.want {
				t.Errorf("WithSuffix(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func sampleTable() *Table {
	return &Table{
		Columns: []string{"분류", "message", "score"},
		Rows: [][]Cell{
			{{Text: "질문"}, {Text: "오늘 날씨가 참 좋네요."}, {Text: "3"}},
			{{Text: "답변"}, {Null: true}, {Text: "5"}},
			{{Text: "질문"}, {Text: "line\nbreak, and \"quotes\""}, {Null: true}},
		},
	}
}

func TestCSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.csv")
	want := sampleTable()

	if err := want.Write(path); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(raw) < 3 || raw[0] != 0xEF || raw[1] != 0xBB || raw[2] != 0xBF {
		t.Error("written csv does not start with a UTF-8 BOM")
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(got.Columns, want.Columns) {
		t.Errorf("columns = %v, want %v", got.Columns, want.Columns)
	}
	if !reflect.DeepEqual(got.Rows, want.Rows) {
		t.Errorf("rows = %v, want %v", got.Rows, want.Rows)
	}
}

func TestLoadCSV_EUCKR(t *testing.T) {
	lines := []string{
		"분류,message",
		"질문,안녕하세요. 오늘 서울 날씨는 어떤가요?",
		"답변,오늘 서울은 대체로 맑겠으며 낮 기온은 이십오 도까지 오르겠습니다.",
		"질문,주말에 가족과 함께 갈 만한 전시회를 추천해 주세요.",
		"답변,국립중앙박물관에서 고려청자 특별전이 열리고 있어 가족 관람객에게 인기가 많습니다.",
		"질문,한국어 맞춤법에서 띄어쓰기가 가장 어려운 부분은 무엇인가요?",
		"답변,의존 명사와 보조 용언의 띄어쓰기가 혼동되기 쉬운 대표적인 사례로 꼽힙니다.",
		"질문,된장찌개를 맛있게 끓이는 방법을 알려 주세요.",
		"답변,멸치와 다시마로 육수를 내고 된장을 풀어 중불에서 천천히 끓이면 깊은 맛이 납니다.",
		"질문,기차를 타고 부산까지 가면 시간이 얼마나 걸리나요?",
		"답변,서울역에서 고속열차를 이용하면 부산역까지 대략 두 시간 사십 분 정도 걸립니다.",
	}
	utf8CSV := strings.Join(lines, "\n") + "\n"

	raw, _, err := transform.Bytes(korean.EUCKR.NewEncoder(), []byte(utf8CSV))
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}

	path := filepath.Join(t.TempDir(), "legacy.csv")
	if err := os.WriteFile(path, raw, 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	table, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(table.Rows) != len(lines)-1 {
		t.Fatalf("got %d rows, want %d", len(table.Rows), len(lines)-1)
	}
	if table.Columns[0] != "분류" {
		t.Errorf("column[0] = %q, want %q", table.Columns[0], "분류")
	}
	if got := table.Rows[0][1].Text; got != "안녕하세요. 오늘 서울 날씨는 어떤가요?" {
		t.Errorf("row[0][1] = %q, want the decoded question", got)
	}
}

func TestLoadCSV_RaggedRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ragged.csv")
	content := " label ,message,extra\nshort,only\nfull,mid,last,overflow\na,,c\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	table, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	wantCols := []string{"label", "message", "extra"}
	if !reflect.DeepEqual(table.Columns, wantCols) {
		t.Fatalf("columns = %v, want %v (whitespace trimmed)", table.Columns, wantCols)
	}

	wantRows := [][]Cell{
		{{Text: "short"}, {Text: "only"}, {Null: true}},
		{{Text: "full"}, {Text: "mid"}, {Text: "last"}},
		{{Text: "a"}, {Null: true}, {Text: "c"}},
	}
	if !reflect.DeepEqual(table.Rows, wantRows) {
		t.Errorf("rows = %v, want %v", table.Rows, wantRows)
	}
}

func TestLoadCSV_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	table, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(table.Columns) != 0 || len(table.Rows) != 0 {
		t.Errorf("got %d columns and %d rows, want an empty table", len(table.Columns), len(table.Rows))
	}
}

func TestLoadCSV_UndecodableEncoding(t *testing.T) {
	// UTF-32LE: a BOM plus NUL-padded ASCII. The detector names it with
	// full confidence, but the charset index used for decoding has no
	// UTF-32 entry, so Load must fail naming the encoding.
	raw := []byte{0xFF, 0xFE, 0x00, 0x00}
	for _, r := range "label,message\na,b\n" {
		raw = append(raw, byte(r), 0x00, 0x00, 0x00)
	}

	path := filepath.Join(t.TempDir(), "utf32.csv")
	if err := os.WriteFile(path, raw, 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error but got none")
	}
	if !strings.Contains(err.Error(), "UTF-32LE") {
		t.Errorf("error %q does not name the detected encoding", err)
	}
}

func TestLoadCSV_ReplacementEncoding(t *testing.T) {
	// ISO-2022-KR: the KS X 1001 designator plus shifted double bytes.
	// Its decoder collapses the entire stream to one U+FFFD, so Load
	// must fail the same way as an encoding with no decoder at all.
	raw := []byte{0x1B, 0x24, 0x29, 0x43}
	raw = append(raw, "label,message\r\n"...)
	for i := 0; i < 4; i++ {
		raw = append(raw, 0x0E, 0x30, 0x21, 0x0F)
		raw = append(raw, ",x\r\n"...)
	}

	path := filepath.Join(t.TempDir(), "legacy2022.csv")
	if err := os.WriteFile(path, raw, 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error but got none")
	}
	if !strings.Contains(err.Error(), "ISO-2022-KR") {
		t.Errorf("error %q does not name the detected encoding", err)
	}
}

func TestTSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.tsv")
	want := &Table{
		Columns: []string{"분류", "message"},
		Rows: [][]Cell{
			{{Text: "질문"}, {Text: "탭으로 구분된 값, 쉼표 포함"}},
			{{Null: true}, {Text: "second"}},
		},
	}

	if err := want.Write(path); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(got.Rows, want.Rows) {
		t.Errorf("rows = %v, want %v", got.Rows, want.Rows)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	want := &Table{
		Columns: []string{"분류", "message", "count", "deleted"},
		Rows: [][]Cell{
			{{Text: "질문"}, {Text: "본문"}, {Text: "42", Raw: true}, {Text: "false", Raw: true}},
			{{Text: "답변"}, {Null: true}, {Text: "3.5", Raw: true}, {Text: "true", Raw: true}},
			{{Text: "질문"}, {Text: ""}, {Null: true}, {Null: true}},
		},
	}

	if err := want.Write(path); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, `"count": 42`) {
		t.Errorf("numbers should stay raw JSON literals, got:\n%s", text)
	}
	if !strings.Contains(text, `"deleted": false`) {
		t.Errorf("booleans should stay raw JSON literals, got:\n%s", text)
	}
	if !strings.Contains(text, `"message": ""`) {
		t.Errorf("empty strings should stay strings, not nulls, got:\n%s", text)
	}
	if !strings.HasPrefix(text, "[\n    {") {
		t.Errorf("output should be a four-space indented array, got prefix %q", text[:min(len(text), 12)])
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(got.Columns, want.Columns) {
		t.Errorf("columns = %v, want %v", got.Columns, want.Columns)
	}
	if !reflect.DeepEqual(got.Rows, want.Rows) {
		t.Errorf("rows = %v, want %v", got.Rows, want.Rows)
	}
}

func TestLoadJSON_FirstSeenColumnOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sparse.json")
	content := `[
		{"b": "1", "a": "2"},
		{"c": "3", "a": "4"}
	]`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	table, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	wantCols := []string{"b", "a", "c"}
	if !reflect.DeepEqual(table.Columns, wantCols) {
		t.Fatalf("columns = %v, want first-seen order %v", table.Columns, wantCols)
	}

	wantRows := [][]Cell{
		{{Text: "1"}, {Text: "2"}, {Null: true}},
		{{Null: true}, {Text: "4"}, {Text: "3"}},
	}
	if !reflect.DeepEqual(table.Rows, wantRows) {
		t.Errorf("rows = %v, want %v", table.Rows, wantRows)
	}
}

func TestLoadJSON_NotAnArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "object.json")
	if err := os.WriteFile(path, []byte(`{"label": "x"}`), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for a non-array document but got none")
	}
}

func TestExcelRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.xlsx")
	want := sampleTable()

	if err := want.Write(path); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(got.Columns, want.Columns) {
		t.Errorf("columns = %v, want %v", got.Columns, want.Columns)
	}
	if !reflect.DeepEqual(got.Rows, want.Rows) {
		t.Errorf("rows = %v, want %v", got.Rows, want.Rows)
	}
}

func TestLoadExcel_WideRowTruncated(t *testing.T) {
	file := excelize.NewFile()
	defer file.Close()
	if err := file.SetSheetRow("Sheet1", "A1", &[]interface{}{"label", "message"}); err != nil {
		t.Fatalf("write header: %v", err)
	}
	if err := file.SetSheetRow("Sheet1", "A2", &[]interface{}{"a", "b", "past the header"}); err != nil {
		t.Fatalf("write row: %v", err)
	}
	path := filepath.Join(t.TempDir(), "wide.xlsx")
	if err := file.SaveAs(path); err != nil {
		t.Fatalf("save fixture: %v", err)
	}

	table, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	want := [][]Cell{{{Text: "a"}, {Text: "b"}}}
	if !reflect.DeepEqual(table.Rows, want) {
		t.Errorf("rows = %v, want fields past the header dropped: %v", table.Rows, want)
	}
}

func TestParquetRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.parquet")
	want := sampleTable()

	if err := want.Write(path); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Parquet keeps the column set but may reorder it; compare by name.
	if len(got.Columns) != len(want.Columns) {
		t.Fatalf("got %d columns %v, want %d", len(got.Columns), got.Columns, len(want.Columns))
	}
	if len(got.Rows) != len(want.Rows) {
		t.Fatalf("got %d rows, want %d", len(got.Rows), len(want.Rows))
	}
	for _, col := range want.Columns {
		wantIdx, _ := want.ColumnIndex(col)
		gotIdx, ok := got.ColumnIndex(col)
		if !ok {
			t.Fatalf("column %q missing after round trip", col)
		}
		for r := range want.Rows {
			w, g := want.Rows[r][wantIdx], got.Rows[r][gotIdx]
			if w.Null != g.Null || w.Text != g.Text {
				t.Errorf("row %d column %q = %+v, want %+v", r, col, g, w)
			}
		}
	}
}
