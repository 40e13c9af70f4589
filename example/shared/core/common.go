package core

// Instead of implementing full value objects, some alias types are used here ...

// ProjectNameString represents a project name.
type ProjectNameString = string
