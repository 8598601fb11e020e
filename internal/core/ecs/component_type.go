package ecs

import "reflect"

// typeOf returns the reflect.Type identifying component type T. It is the
// key used throughout the store and scheduler in place of a reflection-free
// type tag, since Go generics have no compile-time type identifier cheaper
// than reflect.Type for this purpose.
func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
