// Package notification implements the notification record-keeping core:
// the domain model, the lifecycle state machine, and filtered query views.
//
// # Architecture
//
// The package follows a layered design:
//
//   - Storage: persistence contract with MongoDB and in-memory implementations
//   - Service: lifecycle transitions (create, mark read/sent, update, delete,
//     age-based cleanup) with validation
//   - Query: filtered, paginated, sorted listings and per-category stats
//   - CountCache: optional Redis-backed unread-count cache
//
// # Lifecycle
//
// Read and sent are independent status pairs, not a linear chain. Each pair
// couples a boolean with a timestamp that is stamped exactly once, on the
// false-to-true transition; marking twice never overwrites the original
// timestamp. Deletion is terminal and modeled by record absence.
//
// # Error kinds
//
// Operations return one of: validator.ValidationErrors (field-level caller
// errors), ErrNotFound, or ErrStorage joined with the underlying cause. The
// kinds are distinguishable with errors.Is / errors.As, so transport layers
// can map them to status codes without parsing messages.
//
// # Usage
//
//	storage := notification.NewMongoStorage(db)
//	svc := notification.NewService(storage, notification.WithServiceLogger(log))
//
//	n, err := svc.Create(ctx, notification.CreateParams{
//	    UserID:  "u-123",
//	    Type:    notification.TypeParcelUpdate,
//	    Title:   "Parcel received",
//	    Message: "Your parcel arrived at the warehouse",
//	    Channels: []notification.Channel{notification.ChannelEmail, notification.ChannelInApp},
//	})
package notification
