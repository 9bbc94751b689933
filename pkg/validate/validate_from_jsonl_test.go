package validate

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/Gunvolt24/purchase-order/internal/domain"
)

func TestValidateJSONLStream_Mixed(t *testing.T) {
	ctx := context.Background()
	validator := NewOrderValidator()

	line1 := oneLineJSON(minimalValidRequestJSON(1))
	line2 := oneLineJSON(minimalValidRequestJSON(0)) // customerId = 0
	line3 := ""                                      // пустая строка: ок
	line4 := oneLineJSON(minimalValidRequestJSON(3))
	line5 := `{"customerId":4,"items":[]}` // пустой список позиций

	input := strings.Join([]string{line1, line2, line3, line4, line5}, "\n")
	var out bytes.Buffer

	res, err := ValidateJSONLStream(ctx, validator, strings.NewReader(input), &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ValidLinesCount != 2 || res.InvalidLinesCount != 2 {
		t.Fatalf("unexpected counters: %+v", res)
	}

	outLines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(outLines) != 2 {
		t.Fatalf("expected 2 output lines, got %d", len(outLines))
	}
	got := make([]int, 0, 2)
	for _, line := range outLines {
		var r domain.OrderRequest
		if err := json.Unmarshal([]byte(line), &r); err != nil {
			t.Fatalf("unmarshal output line: %v", err)
		}
		got = append(got, r.CustomerID)
	}
	if got[0] != 1 || got[1] != 3 {
		t.Fatalf("unexpected customers in output: %v", got)
	}
}

func TestValidateJSONLStream_CanonicalOutput(t *testing.T) {
	ctx := context.Background()
	validator := NewOrderValidator()

	in := `{"items":[{"isPhysicalItem":true,"price":"3.33","title":"Aliens - Special Edition","id":3}],"customerId":7}`
	var out bytes.Buffer
	if _, err := ValidateJSONLStream(ctx, validator, strings.NewReader(in), &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `{"customerId":7,"items":[{"id":3,"title":"Aliens - Special Edition","price":3.33,"isPhysicalItem":true}]}`
	if strings.TrimSpace(out.String()) != want {
		t.Fatalf("unexpected canonical output:\n got: %s\nwant: %s", out.String(), want)
	}
}

func TestValidateJSONLStream_LargeLine(t *testing.T) {
	ctx := context.Background()
	validator := NewOrderValidator()

	bigTitle := strings.Repeat("X", 200_000) // > 64KB
	raw := `{"customerId":1,"items":[{"id":1,"title":"` + bigTitle + `","price":1,"isPhysicalItem":true}]}`

	var out bytes.Buffer
	res, err := ValidateJSONLStream(ctx, validator, strings.NewReader(raw+"\n"), &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ValidLinesCount != 1 || res.InvalidLinesCount != 0 {
		t.Fatalf("unexpected counters: %+v", res)
	}
}

func TestValidateJSONLStream_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	_, err := ValidateJSONLStream(ctx, NewOrderValidator(), strings.NewReader(oneLineJSON(minimalValidRequestJSON(1))), &out)
	if err == nil {
		t.Fatalf("expected context error")
	}
}
