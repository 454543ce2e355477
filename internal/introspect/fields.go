package introspect

import (
	"reflect"
	"sort"
)

// field is one visible serialized member of a struct, possibly promoted from
// an embedded struct.
type field struct {
	policy memberPolicy
	index  []int
	typ    reflect.Type
	owner  reflect.Type // struct type that declares the field
	goName string
}

// visibleFields lists the serialized members of struct type t in declaration
// order, flattening embedded structs with the encoding/json visibility rules:
// the shallowest field wins, a tagged field wins at equal depth, and an
// unresolvable tie hides the name entirely.
func (in *Introspector) visibleFields(t reflect.Type) []field {
	type pending struct {
		typ   reflect.Type
		index []int
	}

	var fields []field
	current := []pending{}
	next := []pending{{typ: t}}
	count := map[reflect.Type]int{}
	nextCount := map[reflect.Type]int{}
	visited := map[reflect.Type]bool{}

	for len(next) > 0 {
		current, next = next, current[:0]
		count, nextCount = nextCount, map[reflect.Type]int{}

		for _, f := range current {
			if visited[f.typ] {
				continue
			}
			visited[f.typ] = true

			for i := 0; i < f.typ.NumField(); i++ {
				sf := f.typ.Field(i)
				if sf.Anonymous {
					et := sf.Type
					if et.Kind() == reflect.Pointer {
						et = et.Elem()
					}
					if !sf.IsExported() && et.Kind() != reflect.Struct {
						continue
					}
				} else if !sf.IsExported() {
					continue
				}

				p := resolveMember(sf, in.opts.Metadata.member(QualifiedName(f.typ), sf.Name))
				if p.ignore {
					continue
				}

				index := make([]int, len(f.index)+1)
				copy(index, f.index)
				index[len(f.index)] = i

				ft := sf.Type
				if ft.Name() == "" && ft.Kind() == reflect.Pointer {
					ft = ft.Elem()
				}

				if p.tagged || !sf.Anonymous || ft.Kind() != reflect.Struct {
					fields = append(fields, field{policy: p, index: index, typ: sf.Type, owner: f.typ, goName: sf.Name})
					if count[f.typ] > 1 {
						// embedded twice at the same depth: the duplicate
						// annihilates the name below
						fields = append(fields, fields[len(fields)-1])
					}
					continue
				}

				nextCount[ft]++
				if nextCount[ft] == 1 {
					next = append(next, pending{typ: ft, index: index})
				}
			}
		}
	}

	sort.SliceStable(fields, func(i, j int) bool {
		x := fields
		if x[i].policy.name != x[j].policy.name {
			return x[i].policy.name < x[j].policy.name
		}
		if len(x[i].index) != len(x[j].index) {
			return len(x[i].index) < len(x[j].index)
		}
		if x[i].policy.tagged != x[j].policy.tagged {
			return x[i].policy.tagged
		}
		return indexLess(x[i].index, x[j].index)
	})

	out := fields[:0]
	for advance, i := 0, 0; i < len(fields); i += advance {
		fi := fields[i]
		for advance = 1; i+advance < len(fields); advance++ {
			if fields[i+advance].policy.name != fi.policy.name {
				break
			}
		}
		if advance == 1 {
			out = append(out, fi)
			continue
		}
		if dominant, ok := dominantField(fields[i : i+advance]); ok {
			out = append(out, dominant)
		}
	}

	sort.Slice(out, func(i, j int) bool { return indexLess(out[i].index, out[j].index) })
	return out
}

// dominantField picks the winner among fields sharing a name, already sorted
// by depth and taggedness.
func dominantField(fs []field) (field, bool) {
	if len(fs) > 1 && len(fs[0].index) == len(fs[1].index) && fs[0].policy.tagged == fs[1].policy.tagged {
		return field{}, false
	}
	return fs[0], true
}

func indexLess(a, b []int) bool {
	for k, xk := range a {
		if k >= len(b) {
			return false
		}
		if xk != b[k] {
			return xk < b[k]
		}
	}
	return len(a) < len(b)
}
