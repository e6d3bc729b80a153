/*
Package directorysdk is the client for the directory service, which owns the
users and roles shown in the admin console.

# Client

A Client mints a short-lived service token for every request, so callers
never handle tokens themselves:

	signer, err := jwtx.NewHS256(secret, "rolesconsole")
	client := directorysdk.NewClient("http://directory:8081", signer)

	users, err := client.ListUsers(ctx)
	roles, err := client.ListRoles(ctx)

Writes go through the same client:

	role, err := client.CreateRole(ctx, directorysdk.CreateRoleRequest{
		Name:        "editor",
		Permissions: []string{"read", "write"},
	})

# Errors

Non-2xx responses are returned as *APIError carrying the status code and
the service's error code:

	var apiErr *directorysdk.APIError
	if errors.As(err, &apiErr) && apiErr.Code == directorysdk.ErrorCodeRoleInUse {
		// tell the operator to reassign users first
	}

# Circuit breaker

Calls pass through a circuit breaker. After several consecutive transport
or 5xx failures the breaker opens and calls fail fast with ErrUnavailable
until the cool-down elapses. 4xx responses never trip it.
*/
package directorysdk
