// Copyright (c) 2026 Palantir Technologies. All rights reserved.
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

package codecs

import (
	"io"
)

// jsonDecoder may be implemented by values passed to the JSON codec's Decode
// and Unmarshal methods to bypass the standard json.Decoder.
type jsonDecoder interface {
	DecodeJSON(r io.Reader) error
}

// JSONDecoderFunc adapts a function to the DecodeJSON bypass.
type JSONDecoderFunc func(r io.Reader) error

func (f JSONDecoderFunc) DecodeJSON(r io.Reader) error {
	return f(r)
}

// JSONUnmarshalFunc adapts a function to json.Unmarshaler.
type JSONUnmarshalFunc func([]byte) error

func (f JSONUnmarshalFunc) UnmarshalJSON(data []byte) error {
	return f(data)
}

// jsonEncoder may be implemented by values passed to the JSON codec's Encode
// and Marshal methods to bypass the standard json.Encoder.
type jsonEncoder interface {
	EncodeJSON(w io.Writer) error
}

// JSONEncoderFunc adapts a function to the EncodeJSON bypass.
type JSONEncoderFunc func(w io.Writer) error

func (f JSONEncoderFunc) EncodeJSON(w io.Writer) error {
	return f(w)
}

// JSONMarshalFunc adapts a function to json.Marshaler.
type JSONMarshalFunc func() ([]byte, error)

func (f JSONMarshalFunc) MarshalJSON() ([]byte, error) {
	return f()
}
