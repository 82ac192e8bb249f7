// Package compare holds small generic helpers for structural equality.
//
// Syntax tree nodes implement Equal methods that ignore source spans; these
// helpers take care of the nil handling and element-wise comparison those
// methods would otherwise repeat:
//
//	func (q *QualifiedName) Equal(other Node) bool {
//		o, ok := other.(*QualifiedName)
//		if !ok {
//			return false
//		}
//		return compare.PointersWithEqual(q.Database, o.Database, equalIdentifiers) &&
//			compare.PointersWithEqual(q.Name, o.Name, equalIdentifiers)
//	}
package compare
