// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/poiesic/paperflow/core"
)

// Stored values are JSON so the archive stays inspectable with badger's
// command-line tools; keys carry the ordering, values carry the document.

// MarshalID serializes an ID to big-endian bytes for use as an index value.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(id))
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	if len(data) != 8 {
		return 0, fmt.Errorf("%w: id value has %d bytes", ErrSerializationFailed, len(data))
	}
	return core.ID(binary.BigEndian.Uint64(data)), nil
}

// MarshalPaper serializes a Paper to bytes.
func MarshalPaper(paper *core.Paper) ([]byte, error) {
	return marshalJSON(paper)
}

// UnmarshalPaper deserializes a Paper from bytes.
func UnmarshalPaper(data []byte) (*core.Paper, error) {
	var paper core.Paper
	if err := unmarshalJSON(data, &paper); err != nil {
		return nil, err
	}
	return &paper, nil
}

// MarshalClassification serializes a Classification to bytes.
func MarshalClassification(cls *core.Classification) ([]byte, error) {
	return marshalJSON(cls)
}

// UnmarshalClassification deserializes a Classification from bytes.
func UnmarshalClassification(data []byte) (*core.Classification, error) {
	var cls core.Classification
	if err := unmarshalJSON(data, &cls); err != nil {
		return nil, err
	}
	return &cls, nil
}

// MarshalMarker serializes a StageMarker to bytes.
func MarshalMarker(marker core.StageMarker) ([]byte, error) {
	return marshalJSON(marker)
}

// UnmarshalMarker deserializes a StageMarker from bytes.
func UnmarshalMarker(data []byte) (core.StageMarker, error) {
	var marker core.StageMarker
	err := unmarshalJSON(data, &marker)
	return marker, err
}

// MarshalFetchBatch serializes a FetchBatch to bytes.
func MarshalFetchBatch(batch *FetchBatch) ([]byte, error) {
	return marshalJSON(batch)
}

// UnmarshalFetchBatch deserializes a FetchBatch from bytes.
func UnmarshalFetchBatch(data []byte) (*FetchBatch, error) {
	var batch FetchBatch
	if err := unmarshalJSON(data, &batch); err != nil {
		return nil, err
	}
	return &batch, nil
}

func marshalJSON(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return data, nil
}

func unmarshalJSON(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return nil
}
