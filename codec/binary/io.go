// Copyright 2017 karma.run AG. All rights reserved.
// Use of this source code is governed by an AGPL license that can be found in the LICENSE file.
package binary

import (
	eb "encoding/binary"
	"fmt"
)

func readBytes(n int, data []byte) ([]byte, []byte, string) {
	if len(data) < n {
		return nil, data, fmt.Sprintf("unexpected end of input: need %d bytes, have %d", n, len(data))
	}
	return data[:n], data[n:], ""
}

func readLength(data []byte) (int, []byte, string) {
	u, data, problem := readUint32(data)
	return int(u), data, problem
}

func readString(data []byte) (string, []byte, string) {
	l, data, problem := readLength(data)
	if problem != "" {
		return "", data, problem
	}
	bs, data, problem := readBytes(l, data)
	return string(bs), data, problem
}

func readUint64(data []byte) (uint64, []byte, string) {
	bs, data, problem := readBytes(8, data)
	if problem != "" {
		return 0, data, problem
	}
	return eb.BigEndian.Uint64(bs), data, ""
}

func readUint32(data []byte) (uint32, []byte, string) {
	bs, data, problem := readBytes(4, data)
	if problem != "" {
		return 0, data, problem
	}
	return eb.BigEndian.Uint32(bs), data, ""
}

func writeString(s string, buf []byte) []byte {
	return append(writeLength(len(s), buf), s...)
}

func writeLength(l int, buf []byte) []byte {
	return writeUint32(uint32(l), buf)
}

func writeUint64(u uint64, buf []byte) []byte {
	return eb.BigEndian.AppendUint64(buf, u)
}

func writeUint32(u uint32, buf []byte) []byte {
	return eb.BigEndian.AppendUint32(buf, u)
}
