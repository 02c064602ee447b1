package orderflow

import "github.com/xraph/orderflow/id"

// ID is the primary identifier type for all Orderflow entities.
type ID = id.ID

// Prefix identifies the entity type encoded in a TypeID.
type Prefix = id.Prefix
