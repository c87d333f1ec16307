// Package errors provides the structured error type used across knight-api.
//
// Errors carry a Code, a user facing Message, an optional Cause and free
// form Meta. Wrapping keeps the code of the innermost *Error so a
// repository NotFound is still a NotFound once the orchestrator adds
// context.
//
// # Basic Usage
//
//	err := errors.NotFoundf("knight with ID %s not found", id)
//	err := errors.AlreadyExistsf("knight already exists with nickname: %s", nick).
//	    WithMeta("nickname", nick)
//
//	if err := repo.Get(ctx, input); err != nil {
//	    return nil, errors.Wrap(err, "failed to get knight")
//	}
//
// # Checking
//
//	if errors.IsNotFound(err) {
//	    // ...
//	}
//	status := errors.GetCode(err).HTTPStatus()
//
// # Validation
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("name", input.Name, vb)
//	errors.ValidateRange("attributes.strength", input.Strength, 0, 10, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
//
// # Knight lifecycle mapping
//
//   - unknown knight id: NotFound (404)
//   - nickname already taken: AlreadyExists (409)
//   - soft delete of a dead knight: FailedPrecondition (400)
//   - malformed request: InvalidArgument (400)
package errors
