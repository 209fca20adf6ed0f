package serverroom

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordActionRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     RecordActionRequest
		wantErr string
	}{
		{"valid", RecordActionRequest{PunchCardID: "C1", Component: "Rack 3 PSU", Action: "replaced"}, ""},
		{"missing punch card", RecordActionRequest{Component: "PSU", Action: "replaced"}, "punchCardId is required"},
		{"missing component", RecordActionRequest{PunchCardID: "C1", Action: "replaced"}, "component is required"},
		{"missing action", RecordActionRequest{PunchCardID: "C1", Component: "PSU"}, "action is required"},
		{"component too long", RecordActionRequest{PunchCardID: "C1", Component: strings.Repeat("a", 256), Action: "x"}, "component must not exceed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
