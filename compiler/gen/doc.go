// Package gen turns table columns into accessor units.
//
// # Pipeline
//
// The generation of one entity flows through:
//
//	table columns ([]*load.Column)
//	        ↓
//	   MapType + ToPascalCase (one Accessor per column)
//	        ↓
//	   Unit (prefix + entity name, base reference, accessors)
//	        ↓
//	   Target.Render (Go via jennifer, Java via text/template)
//	        ↓
//	   Writer (formatted file next to the entity or under the target dir)
//
// # Key Types
//
//   - Accessor: getter/setter pair of one column, with its semantic type
//     and accessor kind.
//   - Unit: the declarations generated for one entity.
//   - Config: prefix, output directory, header and table naming.
//   - Target: a render language, registered with RegisterTarget.
//
// # Naming
//
// Accessor names depend only on the column name:
//
//	user_id   => getUserId / setUserId, parameter UserId
//	createdAt => getCreatedAt / setCreatedAt
//	9lives    => get9lives / set9lives
//
// Types depend only on the SQL type code, see MapType.
package gen
