// Package domain contains the core business entities, value objects, and
// domain logic of the application. It represents the heart of the system,
// independent of any specific infrastructure or delivery mechanism.
//
// The validation helpers in this package are pure, total functions: they never
// fail, they only answer whether an input is acceptable.
package domain
