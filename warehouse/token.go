package warehouse

import (
	"errors"
	"fmt"

	"github.com/tchajed/marshal"

	"github.com/mit-pdos/go-warehouse/addr"
	"github.com/mit-pdos/go-warehouse/godown"
)

var ErrBadToken = errors.New("warehouse: malformed token")

type TokenKind uint64

const (
	TokenDisk TokenKind = iota + 1
	TokenMemory
	TokenBoth
)

func (k TokenKind) String() string {
	switch k {
	case TokenDisk:
		return "disk"
	case TokenMemory:
		return "memory"
	case TokenBoth:
		return "both"
	}
	return fmt.Sprintf("TokenKind(%d)", uint64(k))
}

// TokenSize is the length of an encoded token: kind, disk address and
// memory address as little-endian uint64s.
const TokenSize = 3 * 8

// Token names an item held by a Warehouse: its godown address, its inventory
// address, or both.
type Token[S addr.WholeNumber] struct {
	kind TokenKind
	disk godown.Address
	mem  S
}

func DiskToken[S addr.WholeNumber](a godown.Address) Token[S] {
	return Token[S]{kind: TokenDisk, disk: a}
}

func MemoryToken[S addr.WholeNumber](s S) Token[S] {
	return Token[S]{kind: TokenMemory, mem: s}
}

func BothToken[S addr.WholeNumber](a godown.Address, s S) Token[S] {
	return Token[S]{kind: TokenBoth, disk: a, mem: s}
}

func (t Token[S]) Kind() TokenKind {
	return t.kind
}

func (t Token[S]) Disk() (godown.Address, bool) {
	return t.disk, t.kind == TokenDisk || t.kind == TokenBoth
}

func (t Token[S]) Memory() (S, bool) {
	return t.mem, t.kind == TokenMemory || t.kind == TokenBoth
}

func (t Token[S]) Bytes() []byte {
	enc := marshal.NewEnc(TokenSize)
	enc.PutInt(uint64(t.kind))
	enc.PutInt(t.disk)
	enc.PutInt(uint64(t.mem))
	return enc.Finish()
}

func ParseToken[S addr.WholeNumber](b []byte) (Token[S], error) {
	if len(b) != TokenSize {
		return Token[S]{}, fmt.Errorf("%w: %d bytes", ErrBadToken, len(b))
	}
	dec := marshal.NewDec(b)
	kind := TokenKind(dec.GetInt())
	disk := dec.GetInt()
	mem := dec.GetInt()
	if kind < TokenDisk || kind > TokenBoth {
		return Token[S]{}, fmt.Errorf("%w: kind %d", ErrBadToken, uint64(kind))
	}
	if mem > addr.Max[S]() {
		return Token[S]{}, fmt.Errorf("%w: memory address %d", ErrBadToken, mem)
	}
	t := Token[S]{kind: kind, disk: disk, mem: S(mem)}
	if _, ok := t.Disk(); !ok && disk != 0 {
		return Token[S]{}, fmt.Errorf("%w: stray disk address", ErrBadToken)
	}
	if _, ok := t.Memory(); !ok && mem != 0 {
		return Token[S]{}, fmt.Errorf("%w: stray memory address", ErrBadToken)
	}
	return t, nil
}

func (t Token[S]) String() string {
	switch t.kind {
	case TokenDisk:
		return fmt.Sprintf("disk(%d)", t.disk)
	case TokenMemory:
		return fmt.Sprintf("memory(%d)", t.mem)
	case TokenBoth:
		return fmt.Sprintf("both(%d,%d)", t.disk, t.mem)
	}
	return "token(invalid)"
}
