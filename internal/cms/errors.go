package cms

import (
	"errors"
	"fmt"

	pkgerrors "github.com/angelmondragon/hubs-storefront/pkg/errors"
)

// QueryError is a transport failure or a GraphQL error reported by the CMS.
type QueryError struct {
	Operation string
	Status    int
	Message   string
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("cms graphql error: %s", e.Message)
}

// HTTPStatus is the CMS response status, zero for transport failures.
func (e *QueryError) HTTPStatus() int { return e.Status }

// NotFoundError reports a missing entry for FindOne.
type NotFoundError struct {
	ContentType string
	ID          string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("entry not found: %s with id %s", e.ContentType, e.ID)
}

func queryFailure(op string, status int, message string) error {
	qe := &QueryError{Operation: op, Status: status, Message: message}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, qe, qe.Error())
}

func notFound(contentType, id string) error {
	nf := &NotFoundError{ContentType: contentType, ID: id}
	return pkgerrors.Wrap(pkgerrors.CodeNotFound, nf, nf.Error())
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
