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

package descriptor

import (
	"os"

	werror "github.com/palantir/witchcraft-go-error"

	"github.com/ZacSweers/kotlinpoet-contracts/codecs"
)

// LoadFile reads and decodes a descriptor file. The codec is chosen by file
// extension: .json, .yaml and .yml content, with optional .gz or .sz
// compression suffixes stacked on top.
func LoadFile(path string) (*File, error) {
	codec, err := codecs.ForFile(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, werror.Wrap(err, "failed to read descriptor file",
			werror.SafeParam("path", path))
	}
	return Load(data, codec)
}

// Load decodes a descriptor document with the given codec. Decoding is
// structural only; see Validate for schema and domain checks.
func Load(data []byte, codec codecs.Codec) (*File, error) {
	var file File
	if err := codec.Unmarshal(data, &file); err != nil {
		return nil, werror.Wrap(err, "failed to decode contract descriptor")
	}
	return &file, nil
}
