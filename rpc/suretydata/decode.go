package suretydata

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// ItemToUint160 decodes a script hash stored in big-endian byte order.
func ItemToUint160(item stackitem.Item) (util.Uint160, error) {
	b, err := item.TryBytes()
	if err != nil {
		return util.Uint160{}, err
	}
	return util.Uint160DecodeBytesBE(b)
}

// ItemToUint256 decodes a 32-byte hash stored in big-endian byte order.
func ItemToUint256(item stackitem.Item) (util.Uint256, error) {
	b, err := item.TryBytes()
	if err != nil {
		return util.Uint256{}, err
	}
	return util.Uint256DecodeBytesBE(b)
}

// ItemToString decodes UTF-8 string.
func ItemToString(item stackitem.Item) (string, error) {
	b, err := item.TryBytes()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", errors.New("not a UTF-8 string")
	}
	return string(b), nil
}

// ItemToInt64 decodes an integer that must fit into int64.
func ItemToInt64(item stackitem.Item) (int64, error) {
	bi, err := item.TryInteger()
	if err != nil {
		return 0, err
	}
	if !bi.IsInt64() {
		return 0, errors.New("integer overflow")
	}
	return bi.Int64(), nil
}

// ItemToInts decodes an array of small integers.
func ItemToInts(item stackitem.Item) ([]int, error) {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return nil, errors.New("not an array")
	}
	res := make([]int, len(arr))
	for i := range arr {
		v, err := ItemToInt64(arr[i])
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		res[i] = int(v)
	}
	return res, nil
}

// ItemToUint160s decodes an array of script hashes. Null is decoded as an
// empty list.
func ItemToUint160s(item stackitem.Item) ([]util.Uint160, error) {
	if _, ok := item.(stackitem.Null); ok {
		return nil, nil
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return nil, errors.New("not an array")
	}
	res := make([]util.Uint160, len(arr))
	for i := range arr {
		var err error
		res[i], err = ItemToUint160(arr[i])
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
	}
	return res, nil
}
