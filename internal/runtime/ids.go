package runtime

// NodeID indexes Schema.Nodes. NoNode marks an absent subschema.
type NodeID uint32

// NoNode is the zero NodeID; Schema.Nodes[0] is never a real node.
const NoNode NodeID = 0
