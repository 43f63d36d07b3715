package augur

import (
	"encoding/json"
	"fmt"
)

// Decoding is two-phase: shallow fields are unmarshaled first, then the
// version foreign key is resolved separately. The server is eventually
// consistent about the "version" field, which may be a bare ID string, a
// full nested object, or absent entirely; a full Version record is attached
// only when the payload inlines one or the caller already holds it.

// rawVersionField splits the polymorphic "version" value into an ID and an
// optional full record.
func rawVersionField(raw json.RawMessage) (string, *Version, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil, nil
	}

	var id string
	if err := json.Unmarshal(raw, &id); err == nil {
		return id, nil, nil
	}

	var v Version
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", nil, fmt.Errorf("parsing version field: %w", err)
	}
	return v.ID, &v, nil
}

// UnmarshalPrediction decodes a prediction record from its JSON form.
// Unknown fields are ignored.
func UnmarshalPrediction(data []byte) (*Prediction, error) {
	var shallow struct {
		Prediction
		RawVersion json.RawMessage `json:"version"`
	}
	if err := json.Unmarshal(data, &shallow); err != nil {
		return nil, fmt.Errorf("parsing prediction: %w", err)
	}

	p := shallow.Prediction
	id, version, err := rawVersionField(shallow.RawVersion)
	if err != nil {
		return nil, err
	}
	p.VersionID = id
	p.Version = version
	return &p, nil
}

// UnmarshalTraining decodes a training record from its JSON form. Unknown
// fields are ignored.
func UnmarshalTraining(data []byte) (*Training, error) {
	var shallow struct {
		Training
		RawVersion json.RawMessage `json:"version"`
	}
	if err := json.Unmarshal(data, &shallow); err != nil {
		return nil, fmt.Errorf("parsing training: %w", err)
	}

	t := shallow.Training
	id, version, err := rawVersionField(shallow.RawVersion)
	if err != nil {
		return nil, err
	}
	t.VersionID = id
	t.Version = version
	return &t, nil
}
