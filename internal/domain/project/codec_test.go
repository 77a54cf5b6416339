package project_test

import (
	"testing"

	"github.com/rpggio/projectboard/internal/domain/project"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func dateGenerator() *rapid.Generator[string] {
	return rapid.StringMatching(`20[0-9]{2}-(0[1-9]|1[0-2])-(0[1-9]|1[0-9]|2[0-8])`)
}

func projectGenerator() *rapid.Generator[project.Project] {
	return rapid.Custom(func(t *rapid.T) project.Project {
		return project.Project{
			ID:          rapid.StringMatching(`p[0-9]{1,4}`).Draw(t, "id"),
			Name:        rapid.StringMatching(`[A-Za-z0-9 ]{1,40}`).Draw(t, "name"),
			ClientName:  rapid.StringMatching(`[A-Za-z ]{1,30}`).Draw(t, "client"),
			Status:      rapid.SampledFrom(project.Statuses()).Draw(t, "status"),
			StartDate:   dateGenerator().Draw(t, "start"),
			EndDate:     rapid.OneOf(rapid.Just(""), dateGenerator()).Draw(t, "end"),
			Description: rapid.OneOf(rapid.Just(""), rapid.StringMatching(`[A-Za-z0-9 .,!?"\\]{1,80}`)).Draw(t, "description"),
		}
	})
}

func TestCodec_RoundTrip_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		projects := rapid.SliceOf(projectGenerator()).Draw(t, "projects")

		data, err := project.Encode(projects)
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		decoded, err := project.Decode(data)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(decoded) != len(projects) {
			t.Fatalf("got %d projects, want %d", len(decoded), len(projects))
		}
		for i := range projects {
			if decoded[i] != projects[i] {
				t.Fatalf("project %d: got %+v, want %+v", i, decoded[i], projects[i])
			}
		}
	})
}

func TestCodec_DecodeRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"object", `{"hello":"world"}`},
		{"null", `null`},
		{"not json", `{{`},
		{"number element", `[1]`},
		{"null element", `[null]`},
		{"missing id", `[{"name":"n","clientName":"c","status":"active","startDate":"2024-01-01"}]`},
		{"missing client", `[{"id":"p1","name":"n","status":"active","startDate":"2024-01-01"}]`},
		{"missing start date", `[{"id":"p1","name":"n","clientName":"c","status":"active"}]`},
		{"numeric id", `[{"id":1,"name":"n","clientName":"c","status":"active","startDate":"2024-01-01"}]`},
		{"unknown status", `[{"id":"p1","name":"n","clientName":"c","status":"archived","startDate":"2024-01-01"}]`},
		{"wrong-case keys", `[{"ID":"p1","NAME":"Site","CLIENTNAME":"Acme","Status":"active","STARTDATE":"2024-01-01"}]`},
		{"null name", `[{"id":"p1","name":null,"clientName":"c","status":"active","startDate":"2024-01-01"}]`},
		{"numeric end date", `[{"id":"p1","name":"n","clientName":"c","status":"active","startDate":"2024-01-01","endDate":5}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := project.Decode([]byte(tt.data))
			require.ErrorIs(t, err, project.ErrInvalidPayload)
		})
	}
}

func TestCodec_DecodeOptionalFields(t *testing.T) {
	projects, err := project.Decode([]byte(`[{"id":"p1","name":"n","clientName":"c","status":"on_hold","startDate":"2024-01-01"}]`))
	require.NoError(t, err)
	require.Equal(t, []project.Project{{
		ID:         "p1",
		Name:       "n",
		ClientName: "c",
		Status:     project.StatusOnHold,
		StartDate:  "2024-01-01",
	}}, projects)
}

func TestCodec_EncodeOmitsAbsentOptionals(t *testing.T) {
	data, err := project.Encode([]project.Project{{ID: "p1", Name: "n", ClientName: "c", Status: project.StatusActive, StartDate: "2024-01-01"}})
	require.NoError(t, err)
	require.JSONEq(t, `[{"id":"p1","name":"n","clientName":"c","status":"active","startDate":"2024-01-01"}]`, string(data))

	empty, err := project.Encode(nil)
	require.NoError(t, err)
	require.Equal(t, `[]`, string(empty))
}

func TestStatus_ParseAndLabel(t *testing.T) {
	s, err := project.ParseStatus("on_hold")
	require.NoError(t, err)
	require.Equal(t, "On hold", s.Label())

	_, err = project.ParseStatus("archived")
	require.ErrorIs(t, err, project.ErrInvalidStatus)
}

func TestPatch_ApplyDoesNotMutate(t *testing.T) {
	orig := project.Seed()[0]
	name := "Renamed"
	merged := project.Patch{Name: &name}.Apply(orig)
	require.Equal(t, "Renamed", merged.Name)
	require.Equal(t, "Website Redesign", orig.Name)
}
