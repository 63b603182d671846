package render_test

import (
	"testing"

	"github.com/goliatone/go-confgen/pkg/render"
)

func TestPreprocess_NormalizesSugarMarkers(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "no spacing",
			in:   "host: {{db.host}}",
			want: "host: {{ db.host }}",
		},
		{
			name: "excess spacing",
			in:   "host: {{    db.host\t}}",
			want: "host: {{ db.host }}",
		},
		{
			name: "already canonical",
			in:   "host: {{ db.host }}",
			want: "host: {{ db.host }}",
		},
		{
			name: "multiple markers on one line",
			in:   "{{db.host}}:{{  db.port }}",
			want: "{{ db.host }}:{{ db.port }}",
		},
		{
			name: "expression text preserved verbatim",
			in:   `{{  name|default:"a  b"  }}`,
			want: `{{ name|default:"a  b" }}`,
		},
		{
			name: "control tags untouched",
			in:   "{% if debug %}on{% endif %}",
			want: "{% if debug %}on{% endif %}",
		},
		{
			name: "plain text untouched",
			in:   "production:\n  adapter: postgresql\n",
			want: "production:\n  adapter: postgresql\n",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := render.Preprocess(tc.in)
			if got != tc.want {
				t.Fatalf("Preprocess(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestPreprocess_Idempotent(t *testing.T) {
	in := "a: {{a}}\nb: {{   b.c   }}\n{% for x in xs %}{{x.y}}{% endfor %}\n"
	once := render.Preprocess(in)
	twice := render.Preprocess(once)
	if once != twice {
		t.Fatalf("preprocessing is not idempotent:\nonce:  %q\ntwice: %q", once, twice)
	}
}
