package numerology

import "fmt"

// MasterSet lists the values the reducer leaves untouched once reached. It is
// a value type, so a set handed out cannot be changed by its receiver. The
// zero value reduces every number down to a single digit.
type MasterSet struct {
	mask uint64
}

// NewMasterSet builds a set from values. Values outside 10..63 are ignored
// since they can never stop a reduction.
func NewMasterSet(values ...int) MasterSet {
	var m MasterSet
	for _, v := range values {
		if v > 9 && v < 64 {
			m.mask |= 1 << uint(v)
		}
	}
	return m
}

// DateMasters applies to the year, month, day and destiny reductions.
func DateMasters() MasterSet { return NewMasterSet(11, 22, 33) }

// NameMasters applies to the Chaldean name reduction.
func NameMasters() MasterSet { return NewMasterSet(11, 22) }

// NoMasters reduces unconditionally to 1..9 (root cycle, antardasha).
func NoMasters() MasterSet { return MasterSet{} }

// Contains reports whether n is a master number in the set.
func (m MasterSet) Contains(n int) bool {
	if n < 0 || n > 63 {
		return false
	}
	return m.mask&(1<<uint(n)) != 0
}

// Values returns the members in ascending order as a fresh slice.
func (m MasterSet) Values() []int {
	var out []int
	for n := 10; n < 64; n++ {
		if m.Contains(n) {
			out = append(out, n)
		}
	}
	return out
}

// Reduce repeatedly replaces n by the sum of its decimal digits until the
// value is at most 9 or belongs to masters.
func Reduce(n int, masters MasterSet) (int, error) {
	if n < 0 {
		return 0, &OpError{
			Op:   "numerology.reduce",
			Kind: KindInvalidInput,
			Err:  fmt.Errorf("negative value %d", n),
		}
	}
	for n > 9 && !masters.Contains(n) {
		n = DigitSum(n)
	}
	return n, nil
}

// MustReduce is Reduce for arguments known to be non-negative.
func MustReduce(n int, masters MasterSet) int {
	out, err := Reduce(n, masters)
	if err != nil {
		panic(err)
	}
	return out
}

// DigitSum adds the decimal digits of a non-negative n.
func DigitSum(n int) int {
	if n < 0 {
		n = -n
	}
	sum := 0
	for n > 0 {
		sum += n % 10
		n /= 10
	}
	return sum
}
