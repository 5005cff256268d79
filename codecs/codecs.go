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

// Package codecs provides the serialization codecs used for contract
// descriptor files and metadata documents: JSON and YAML content codecs, a
// plain-text codec, and GZIP/SNAPPY compression wrappers that compose over
// any content codec.
package codecs

import (
	"io"
	"strings"

	werror "github.com/palantir/witchcraft-go-error"
)

// Decoder reads serialized values.
type Decoder interface {
	Decode(r io.Reader, v interface{}) error
	Unmarshal(data []byte, v interface{}) error
}

// Encoder writes serialized values.
type Encoder interface {
	Encode(w io.Writer, v interface{}) error
	Marshal(v interface{}) ([]byte, error)
}

// Codec is a symmetric encoder/decoder pair with its media type.
type Codec interface {
	Accept() string
	Decoder
	ContentType() string
	Encoder
}

// ForFile returns the codec for a descriptor file path based on its
// extension. Compression extensions stack over a content extension:
// "contracts.yml.gz" yields GZIP(YAML), "contracts.json.sz" yields
// SNAPPY(JSON).
func ForFile(path string) (Codec, error) {
	switch {
	case strings.HasSuffix(path, ".gz"):
		inner, err := ForFile(strings.TrimSuffix(path, ".gz"))
		if err != nil {
			return nil, err
		}
		return GZIP(inner), nil
	case strings.HasSuffix(path, ".sz"):
		inner, err := ForFile(strings.TrimSuffix(path, ".sz"))
		if err != nil {
			return nil, err
		}
		return SNAPPY(inner), nil
	case strings.HasSuffix(path, ".json"):
		return JSON, nil
	case strings.HasSuffix(path, ".yaml"), strings.HasSuffix(path, ".yml"):
		return YAML, nil
	}
	return nil, werror.Error("unsupported descriptor file extension",
		werror.SafeParam("path", path))
}
