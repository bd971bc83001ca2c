package register

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// FuzzNewBank feeds arbitrary comma-separated name lists into NewBank and
// checks the duplicate contract against a direct scan of the input.
func FuzzNewBank(f *testing.F) {
	f.Add("ra,rb,rc")
	f.Add("ra,ra")
	f.Add("ra,rb,rb,ra")
	f.Add("")
	f.Add("pc,sp,sr,pc,sp")

	widths := []Width{Width8, Width16, Width32, Width64}

	f.Fuzz(func(t *testing.T, list string) {
		assert := assert.New(t)

		var defs []Definition
		for n, name := range strings.Split(list, ",") {
			if name == "" {
				continue
			}
			defs = append(defs, Define(name, widths[n%len(widths)]))
		}

		// Reference scan: first (i, j) in row-major order with equal names.
		var want *ErrRegisterDuplicate
	scan:
		for i := range defs {
			for j := range defs {
				if i == j {
					continue
				}
				if defs[i].Name == defs[j].Name {
					want = &ErrRegisterDuplicate{
						Name:   defs[i].Name,
						First:  i,
						Second: j,
					}
					break scan
				}
			}
		}

		bank, err := NewBank(defs)
		if want == nil {
			assert.NoError(err)
			assert.Equal(len(defs), bank.Len())
			for _, def := range defs {
				cell, ok := bank.Cell(def.Name)
				assert.True(ok, def.Name)
				assert.Equal(def.Width, cell.Width(), def.Name)
			}
			return
		}

		assert.Nil(bank)
		var ed *ErrRegisterDuplicate
		if assert.ErrorAs(err, &ed) {
			assert.Equal(want.Name, ed.Name)
			assert.Equal(want.First, ed.First)
			assert.Equal(want.Second, ed.Second)
		}
	})
}
