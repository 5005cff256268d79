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
	"encoding"
	"fmt"
	"io"

	werror "github.com/palantir/witchcraft-go-error"
)

const contentTypePlain = "text/plain"

// Plain moves raw text in and out of strings and encoding.TextMarshaler /
// encoding.TextUnmarshaler values. Rendered contract blocks travel through
// this codec.
var Plain Codec = codecPlain{}

type codecPlain struct{}

func (codecPlain) Accept() string {
	return contentTypePlain
}

func (c codecPlain) Decode(r io.Reader, v interface{}) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return werror.Wrap(err, "read failed")
	}
	return c.Unmarshal(data, v)
}

func (c codecPlain) Unmarshal(data []byte, v interface{}) error {
	switch target := v.(type) {
	case *string:
		*target = string(data)
		return nil
	case encoding.TextUnmarshaler:
		return target.UnmarshalText(data)
	}
	return werror.Error("unsupported target type for plain text",
		werror.SafeParam("targetType", fmt.Sprintf("%T", v)))
}

func (codecPlain) ContentType() string {
	return contentTypePlain
}

func (c codecPlain) Encode(w io.Writer, v interface{}) error {
	data, err := c.Marshal(v)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return werror.Wrap(err, "write failed")
}

func (c codecPlain) Marshal(v interface{}) ([]byte, error) {
	switch value := v.(type) {
	case string:
		return []byte(value), nil
	case *string:
		return []byte(*value), nil
	case []byte:
		return value, nil
	case encoding.TextMarshaler:
		return value.MarshalText()
	case fmt.Stringer:
		return []byte(value.String()), nil
	}
	return nil, werror.Error("unsupported value type for plain text",
		werror.SafeParam("valueType", fmt.Sprintf("%T", v)))
}
