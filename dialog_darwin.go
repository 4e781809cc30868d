//go:build darwin

package main

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Cocoa

#import <Cocoa/Cocoa.h>
#include <stdlib.h>

// runOnMain runs block on the main thread and waits for it.
static void runOnMain(void (^block)(void)) {
    if ([NSThread isMainThread]) {
        block();
    } else {
        dispatch_sync(dispatch_get_main_queue(), block);
    }
}

// showComboPrompt asks for a hotkey combo. Returns "1:<text>" on OK and
// "0:" on Cancel; the caller frees the result.
char* showComboPrompt(const char* title, const char* message, const char* current) {
    @autoreleasepool {
        __block NSString* result = nil;

        runOnMain(^{
            NSAlert *alert = [[NSAlert alloc] init];
            [alert setMessageText:[NSString stringWithUTF8String:title]];
            [alert setInformativeText:[NSString stringWithUTF8String:message]];
            [alert addButtonWithTitle:@"Set"];
            [alert addButtonWithTitle:@"Cancel"];

            NSTextField *input = [[NSTextField alloc] initWithFrame:NSMakeRect(0, 0, 260, 24)];
            [input setStringValue:[NSString stringWithUTF8String:current]];
            [input setPlaceholderString:@"Cmd+Shift+Space"];
            [alert setAccessoryView:input];
            [[alert window] setInitialFirstResponder:input];

            if ([alert runModal] == NSAlertFirstButtonReturn) {
                result = [input stringValue];
            }
        });

        if (result != nil) {
            return strdup([[NSString stringWithFormat:@"1:%@", result] UTF8String]);
        }
        return strdup("0:");
    }
}

int showConfirmDialog(const char* title, const char* message) {
    @autoreleasepool {
        __block BOOL confirmed = NO;

        runOnMain(^{
            NSAlert *alert = [[NSAlert alloc] init];
            [alert setMessageText:[NSString stringWithUTF8String:title]];
            [alert setInformativeText:[NSString stringWithUTF8String:message]];
            [alert addButtonWithTitle:@"Open Settings"];
            [alert addButtonWithTitle:@"Not Now"];
            [alert setAlertStyle:NSAlertStyleWarning];
            confirmed = ([alert runModal] == NSAlertFirstButtonReturn);
        });

        return confirmed ? 1 : 0;
    }
}
*/
import "C"
import (
	"strings"
	"unsafe"
)

// PromptForCombo asks the user to type a hotkey combo such as "Cmd+Shift+K".
// Returns the text and true if the user confirmed.
func PromptForCombo(title, message, current string) (string, bool) {
	cTitle := C.CString(title)
	cMessage := C.CString(message)
	cCurrent := C.CString(current)
	defer C.free(unsafe.Pointer(cTitle))
	defer C.free(unsafe.Pointer(cMessage))
	defer C.free(unsafe.Pointer(cCurrent))

	cResult := C.showComboPrompt(cTitle, cMessage, cCurrent)
	defer C.free(unsafe.Pointer(cResult))

	result := C.GoString(cResult)
	if strings.HasPrefix(result, "1:") {
		return strings.TrimSpace(result[2:]), true
	}
	return "", false
}

// ConfirmDialog shows a warning with "Open Settings" and "Not Now"
// Returns true for "Open Settings"
func ConfirmDialog(title, message string) bool {
	cTitle := C.CString(title)
	cMessage := C.CString(message)
	defer C.free(unsafe.Pointer(cTitle))
	defer C.free(unsafe.Pointer(cMessage))

	return C.showConfirmDialog(cTitle, cMessage) == 1
}
