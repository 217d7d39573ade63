/*
Package model holds the data model of the Forage processor API.

Result records (PaymentMethod, Balance, Payment) are decoded from the
processor's snake_case JSON and are never mutated after creation. Each is
identified by an opaque server-assigned reference string.

Error Handling:

Every recoverable failure in the SDK is surfaced as a *ForageError carrying a
stable machine-readable code and a human-readable message. Callers should
branch on the code, never parse the message:

	var forageErr *model.ForageError
	if errors.As(err, &forageErr) && forageErr.Code == model.CodePollTimeout {
	    // the poll timed out; the operation may still complete server-side
	}
*/
package model
