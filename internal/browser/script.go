package browser

import (
	"fmt"
	"strings"
)

// getAllJS is the in-page query. It selects clickable elements, skips
// zero-sized and out-of-viewport boxes, de-duplicates by rounded
// position, caps the result at 200 entries and trims text to 50 chars.
// Returns {"vh": window.innerHeight, "els": [...]} as a JSON string.
const getAllJS = `(function(){var r=[];var seen=new Set();var s="a[href],button,input,textarea,select,[role=button],[role=link],[onclick],[tabindex]";var els=document.querySelectorAll(s);for(var i=0;i<els.length&&r.length<200;i++){var el=els[i];var rect=el.getBoundingClientRect();if(rect.width<=0||rect.height<=0)continue;if(rect.top>window.innerHeight||rect.bottom<0)continue;if(rect.left>window.innerWidth||rect.right<0)continue;var k=Math.round(rect.left)+","+Math.round(rect.top);if(seen.has(k))continue;seen.add(k);var t=el.textContent||el.value||el.placeholder||"";t=t.trim().substring(0,50);r.push({x:rect.left,y:rect.top,width:rect.width,height:rect.height,tag:el.tagName.toLowerCase(),text:t});}return JSON.stringify({vh:window.innerHeight,els:r});})()`

// buildCombinedScript produces one AppleScript that reads the front
// window's position and size from System Events and evaluates js in the
// active tab, returning "winX,winY,winH|<jsResult>". Doing both in a
// single osascript call keeps the bridge round trip under one process
// spawn.
func buildCombinedScript(appName, js string) string {
	escaped := strings.ReplaceAll(strings.ReplaceAll(js, `"`, `\"`), "\n", "")
	return fmt.Sprintf(`set winInfo to ""
tell application "System Events"
    try
        set winPos to position of front window of process "%[1]s"
        set winSize to size of front window of process "%[1]s"
        set winInfo to (item 1 of winPos as text) & "," & (item 2 of winPos as text) & "," & (item 2 of winSize as text)
    end try
end tell
set jsResult to "null"
tell application "%[1]s"
    if (count of windows) > 0 then
        tell active tab of front window
            try
                set jsResult to execute javascript "%[2]s"
            end try
        end tell
    end if
end tell
return winInfo & "|" & jsResult`, appName, escaped)
}
