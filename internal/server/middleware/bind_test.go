package middleware

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBindHeader(t *testing.T) {
	type args struct {
		header map[string]string
		out    any
	}

	type normalCase struct {
		App     string `header:"app"`
		Service string `header:"service"`

		Non   string `header:"-"`
		Empty bool
	}

	type complexCase struct {
		Nine              int64   `header:"nine"`
		ThousandAndSeven  uint64  `header:"thousand-and-seven"`
		NegativeThirtyTwo int64   `header:"negative-thirty-two"`
		HundredPointSix   float32 `header:"hundred-point-six"`
		Rose              string  `header:"rose"`
	}

	tests := []struct {
		name    string
		args    args
		want    any
		wantErr error
	}{
		{
			name: "normal bind header",
			args: args{
				header: map[string]string{
					"app":     "storefront-web",
					"service": "checkout",
					"non":     "non",
					"empty":   "empty",
				},
				out: new(normalCase),
			},
			want: &normalCase{
				App:     "storefront-web",
				Service: "checkout",
				Non:     "",
				Empty:   false,
			},
			wantErr: nil,
		},
		{
			name: "complex bind header",
			args: args{
				header: map[string]string{
					"nine":                "9",
					"thousand-and-seven":  "1007",
					"negative-thirty-two": "-32",
					"hundred-point-six":   "100.6",
					"rose":                "rose",
				},
				out: new(complexCase),
			},
			want: &complexCase{
				Nine:              9,
				ThousandAndSeven:  1007,
				NegativeThirtyTwo: -32,
				HundredPointSix:   100.6,
				Rose:              "rose",
			},
			wantErr: nil,
		},
		{
			name: "absent header keeps the field",
			args: args{
				header: map[string]string{"app": "storefront-web"},
				out:    &normalCase{Service: "preset"},
			},
			want:    &normalCase{App: "storefront-web", Service: "preset"},
			wantErr: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := http.Header{}
			for k, v := range tt.args.header {
				header.Set(k, v)
			}
			err := bindHeader(header, tt.args.out)
			assert.EqualValues(t, err, tt.wantErr)
			assert.EqualValues(t, tt.want, tt.args.out)
		})
	}
}
