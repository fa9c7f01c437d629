package tline

import "testing"

func TestFromTTY(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		want    []TString
		wantTxt string
	}{
		{
			name:    "plain text",
			raw:     "  --> src/lib.rs:3:9",
			want:    []TString{{Raw: "  --> src/lib.rs:3:9"}},
			wantTxt: "  --> src/lib.rs:3:9",
		},
		{
			name: "cargo warning title",
			raw:  "\x1b[0m\x1b[1m\x1b[33mwarning\x1b[0m\x1b[0m\x1b[1m: unused variable\x1b[0m",
			want: []TString{
				{CSI: "\x1b[1m\x1b[33m", Raw: "warning"},
				{CSI: "\x1b[1m", Raw: ": unused variable"},
			},
			wantTxt: "warning: unused variable",
		},
		{
			name:    "non SGR sequences are dropped",
			raw:     "\x1b[2Kbuilding\x1b7",
			want:    []TString{{Raw: "building"}},
			wantTxt: "building",
		},
		{
			name:    "hyperlink keeps only its label",
			raw:     "\x1b]8;;file:///src/lib.rs\x1b\\src/lib.rs\x1b]8;;\x1b\\:3",
			want:    []TString{{Raw: "src/lib.rs:3"}},
			wantTxt: "src/lib.rs:3",
		},
		{
			name:    "BEL terminated title is dropped",
			raw:     "\x1b]0;cargo build\x07\x1b[1mCompiling\x1b[0m demo",
			want:    []TString{{CSI: "\x1b[1m", Raw: "Compiling"}, {Raw: " demo"}},
			wantTxt: "Compiling demo",
		},
		{
			name:    "control characters other than tab are dropped",
			raw:     "a\tb\rc\x07",
			want:    []TString{{Raw: "a\tbc"}},
			wantTxt: "a\tbc",
		},
		{
			name:    "private mode sequence is not a style",
			raw:     "\x1b[?25lx",
			want:    []TString{{Raw: "x"}},
			wantTxt: "x",
		},
		{
			name:    "truncated sequence is discarded",
			raw:     "done\x1b[1",
			want:    []TString{{Raw: "done"}},
			wantTxt: "done",
		},
		{
			name:    "truncated hyperlink is discarded",
			raw:     "see \x1b]8;;http://x",
			want:    []TString{{Raw: "see "}},
			wantTxt: "see ",
		},
		{
			name:    "empty",
			raw:     "",
			want:    nil,
			wantTxt: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := FromTTY(tt.raw)
			if len(got.Strings) != len(tt.want) {
				t.Fatalf("got %d runs %q, want %d %q", len(got.Strings), got.Strings, len(tt.want), tt.want)
			}
			for i := range tt.want {
				if got.Strings[i] != tt.want[i] {
					t.Errorf("run %d = %q, want %q", i, got.Strings[i], tt.want[i])
				}
			}
			if txt := got.Text(); txt != tt.wantTxt {
				t.Errorf("Text() = %q, want %q", txt, tt.wantTxt)
			}
		})
	}
}

func TestStyledRoundTrip(t *testing.T) {
	t.Parallel()

	line := FromTTY("\x1b[1mwarning\x1b[0m: x")
	want := "\x1b[1mwarning\x1b[0m: x"
	if got := line.Styled(); got != want {
		t.Errorf("Styled() = %q, want %q", got, want)
	}
	if got := FromTTY(line.Styled()).Text(); got != "warning: x" {
		t.Errorf("reparsed Text() = %q", got)
	}
}

func TestIsBlank(t *testing.T) {
	t.Parallel()

	if !FromTTY("   \x1b[0m ").IsBlank() {
		t.Error("whitespace line should be blank")
	}
	if FromTTY(" x ").IsBlank() {
		t.Error("non-empty line should not be blank")
	}
}

func TestBold(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		csi  string
		want bool
	}{
		{name: "unstyled", csi: "", want: false},
		{name: "bold", csi: "\x1b[1m", want: true},
		{name: "bold then color", csi: "\x1b[1m\x1b[31m", want: true},
		{name: "combined params", csi: "\x1b[31;1m", want: true},
		{name: "256 color index 1", csi: "\x1b[38;5;1m", want: false},
		{name: "256 color then bold", csi: "\x1b[38;5;1;1m", want: true},
		{name: "colon sub params", csi: "\x1b[38:5:1m", want: false},
		{name: "truecolor background", csi: "\x1b[48;2;1;1;1m", want: false},
		{name: "normal intensity cancels", csi: "\x1b[1;22m", want: false},
		{name: "later sequence cancels", csi: "\x1b[1m\x1b[22m", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := (TString{CSI: tt.csi, Raw: "x"}).Bold(); got != tt.want {
				t.Errorf("Bold(%q) = %v, want %v", tt.csi, got, tt.want)
			}
		})
	}
}
