package types

import (
	"encoding/json"
	"fmt"
	"math/big"
)

// BigInt wraps *big.Int so uint256 values travel as decimal strings in JSON
type BigInt struct {
	*big.Int
}

func NewBigInt(i *big.Int) *BigInt {
	if i == nil {
		return nil
	}
	return &BigInt{Int: i}
}

func NewBigIntFromInt64(i int64) *BigInt {
	return &BigInt{Int: big.NewInt(i)}
}

func (b *BigInt) MarshalJSON() ([]byte, error) {
	if b == nil || b.Int == nil {
		return []byte("null"), nil
	}
	return json.Marshal(b.Int.String())
}

func (b *BigInt) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		b.Int = nil
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// plain JSON numbers are accepted too
		str = string(data)
	}

	i, ok := new(big.Int).SetString(str, 10)
	if !ok {
		return fmt.Errorf("invalid integer value %q", str)
	}
	b.Int = i
	return nil
}

// ToBigInt never returns nil
func (b *BigInt) ToBigInt() *big.Int {
	if b == nil || b.Int == nil {
		return new(big.Int)
	}
	return b.Int
}

func (b *BigInt) String() string {
	if b == nil || b.Int == nil {
		return "0"
	}
	return b.Int.String()
}
