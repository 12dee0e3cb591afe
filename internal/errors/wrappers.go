package errors

import "fmt"

// Common error wrapping patterns used by the CLI layers

// WrapWithOperation wraps an error with an operation context
func WrapWithOperation(operation, item string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s %s", operation, item)
	return Wrap(UnknownErrorCode, message, cause)
}

// WrapFileSystemError wraps file system related errors
func WrapFileSystemError(operation, path string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s file '%s'", operation, path)
	return Wrap(FileSystemErrorCode, message, cause).
		WithContext("operation", operation).
		WithContext("path", path)
}

// WrapConfigurationError wraps configuration-related errors
func WrapConfigurationError(configType, operation string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s configuration '%s'", operation, configType)
	return Wrap(ConfigurationErrorCode, message, cause).
		WithContext("config_type", configType).
		WithContext("operation", operation)
}

// WrapModuleError wraps go.mod resolution errors
func WrapModuleError(path string, cause error) *BaseError {
	return Wrap(ModuleErrorCode, fmt.Sprintf("failed to resolve module for '%s'", path), cause).
		WithContext("path", path).
		WithSuggestions(
			"Check your go.mod file exists and is valid",
			"Ensure you're running from the correct directory",
			"Try specifying --module flag explicitly",
		)
}

// ConfigurationError creates a configuration error
func ConfigurationError(configType, message string) *BaseError {
	fullMessage := fmt.Sprintf("configuration error in '%s': %s", configType, message)
	return New(ConfigurationErrorCode, fullMessage).
		WithContext("config_type", configType)
}

// AsDecoratableError converts any error into a DecoratableError, keeping
// structured errors as they are
func AsDecoratableError(err error) DecoratableError {
	if de, ok := err.(DecoratableError); ok {
		return de
	}
	return New(UnknownErrorCode, err.Error()).WithCause(err)
}
